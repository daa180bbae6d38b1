package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidProduct, http.StatusBadRequest},
		{CodeInvalidQuantity, http.StatusBadRequest},
		{CodeQuantityOutOfRange, http.StatusUnprocessableEntity},
		{CodeInvalidCoupon, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("MetadataFor(%s): got status %d, want %d", tc.code, got, tc.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "load coupon")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be retrievable with errors.Is")
	}
	if typed := As(err); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("unexpected typed error: %v", typed)
	}
}

func TestHasCode(t *testing.T) {
	t.Parallel()

	err := New(CodeQuantityOutOfRange, "quantity 150 exceeds the maximum of 99")
	if !HasCode(err, CodeQuantityOutOfRange) {
		t.Fatal("expected HasCode to match")
	}
	if HasCode(err, CodeInvalidCoupon) {
		t.Fatal("expected HasCode to reject a different code")
	}
	if HasCode(stdErrors.New("plain"), CodeInternal) {
		t.Fatal("plain errors carry no code")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeDependency, stdErrors.New("dial tcp: refused"), "save snapshot")
	dump := Dump(err)

	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code: %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %d", len(dump.Chain))
	}
}
