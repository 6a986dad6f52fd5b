package hoststatus

import (
	"errors"
	"strings"
	"testing"

	"github.com/risparfinance/camus"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	callErr := errors.New("call failed")

	tt := []struct {
		name     string
		code     int32
		msg      string
		present  bool
		callErr  error
		wantErrs []error
		wantText string
	}{
		{name: "ok", code: OK, present: true},
		{name: "partial", code: Partial, present: true},
		{name: "missing status", wantErrs: []error{camus.ErrHostResponseInvalid}},
		{name: "missing status with call error", callErr: callErr, wantErrs: []error{camus.ErrHostCall, callErr, camus.ErrHostResponseInvalid}},
		{name: "bad input", code: BadInput, msg: "syntax error", present: true, wantErrs: []error{camus.ErrHostError}, wantText: "host status 400: syntax error"},
		{name: "not found", code: Missing, present: true, wantErrs: []error{camus.ErrHostError}, wantText: "host status 404"},
		{name: "server error with call error", code: Error, present: true, callErr: callErr, wantErrs: []error{camus.ErrHostCall, callErr, camus.ErrHostError}},
		{name: "unexpected code", code: 302, present: true, wantErrs: []error{camus.ErrHostResponseInvalid}, wantText: "unexpected host status code 302"},
		{name: "unexpected code with call error", code: 0, present: true, callErr: callErr, wantErrs: []error{camus.ErrHostCall, callErr, camus.ErrHostResponseInvalid}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tc.code, tc.msg, tc.present, tc.callErr)
			if len(tc.wantErrs) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			for _, want := range tc.wantErrs {
				if !errors.Is(err, want) {
					t.Fatalf("expected %v in %v", want, err)
				}
			}
			if tc.wantText != "" && !strings.Contains(err.Error(), tc.wantText) {
				t.Fatalf("error text: want %q in %q", tc.wantText, err.Error())
			}
		})
	}
}
