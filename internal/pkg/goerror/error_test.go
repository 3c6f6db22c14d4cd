package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestNewBusiness(t *testing.T) {

	// Act
	err := NewBusiness("phone already registered", CodeConflict)

	// Assert
	gerr := &Error{}
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Type() != TypeBusiness {
		t.Fatalf("unexpected type: %v", gerr.Type())
	}
	if gerr.Code() != CodeConflict {
		t.Fatalf("unexpected code: %v", gerr.Code())
	}
	if gerr.Error() != "phone already registered" {
		t.Fatalf("unexpected message: %q", gerr.Error())
	}
}

func TestNewServer(t *testing.T) {

	// Arrange
	cause := errors.New("connection refused")

	// Act
	err := NewServer(cause)

	// Assert
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}

	gerr := &Error{}
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Code() != CodeInternal || gerr.Type() != TypeServer {
		t.Fatalf("unexpected classification: %v %v", gerr.Code(), gerr.Type())
	}
	if gerr.Msg() != "Internal server error" {
		t.Fatalf("unexpected message: %q", gerr.Msg())
	}
}

func TestNewInvalidInput(t *testing.T) {

	t.Run("WithFieldPairs", func(t *testing.T) {

		// Act
		err := NewInvalidInput(nil, "code", "must be 4 digits")

		// Assert
		gerr := &Error{}
		if !errors.As(err, &gerr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if gerr.Code() != CodeInvalidInput {
			t.Fatalf("unexpected code: %v", gerr.Code())
		}
		if gerr.Fields()["code"] != "must be 4 digits" {
			t.Fatalf("unexpected fields: %v", gerr.Fields())
		}
	})

	t.Run("WithUnderlyingError", func(t *testing.T) {

		// Arrange
		cause := errors.New("bad input")

		// Act
		err := NewInvalidInput(cause)

		// Assert
		gerr := &Error{}
		if !errors.As(err, &gerr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if gerr.Code() != CodeInvalidInput || !errors.Is(err, cause) {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("OddPairsFallsBackToFormat", func(t *testing.T) {

		// Act
		err := NewInvalidInput(nil, "dangling")

		// Assert
		gerr := &Error{}
		if !errors.As(err, &gerr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if gerr.Code() != CodeInvalidFormat {
			t.Fatalf("unexpected code: %v", gerr.Code())
		}
	})
}

func TestNewInvalidFormat(t *testing.T) {

	// Act
	err := NewInvalidFormat()

	// Assert
	gerr := &Error{}
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Code() != CodeInvalidFormat || gerr.Msg() != "Invalid request body" {
		t.Fatalf("unexpected error: %v", gerr)
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidFormat, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequest, http.StatusTooManyRequests},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeTimeout, http.StatusRequestTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {

			// Arrange
			err := NewBusiness("msg", tt.code)

			// Act
			gerr := &Error{}
			errors.As(err, &gerr)

			// Assert
			if got := gerr.StatusCode(); got != tt.want {
				t.Fatalf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
