package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type stockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing or non-positive fields are rejected", prop.ForAll(
		func(includeProductID bool, quantity int) bool {
			reqMap := make(map[string]interface{})
			if includeProductID {
				reqMap["product_id"] = "prod-1"
			}
			reqMap["quantity"] = quantity

			shouldPass := includeProductID && quantity > 0

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var decoded stockRequest
			err := DecodeAndValidate(req, &decoded)

			if shouldPass {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.IntRange(-5, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrorsCarriesFieldNames(t *testing.T) {
	reqBody, _ := json.Marshal(map[string]interface{}{"quantity": 0})
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	var decoded stockRequest
	err := DecodeAndValidate(req, &decoded)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(formatted))
	}

	fields := map[string]bool{}
	for _, fe := range formatted {
		fields[fe.Field] = true
		if fe.Message == "" {
			t.Errorf("expected a message for field %s", fe.Field)
		}
	}
	if !fields["ProductID"] || !fields["Quantity"] {
		t.Errorf("expected errors for ProductID and Quantity, got %v", fields)
	}
}

func TestDecodeAndValidateRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	var decoded stockRequest
	if err := DecodeAndValidate(req, &decoded); err == nil {
		t.Error("expected malformed JSON to fail decoding")
	}
}
