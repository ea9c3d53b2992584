package utils

import (
	"context"
	"fmt"
	"regexp"

	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	lookupsv2 "github.com/twilio/twilio-go/rest/lookups/v2"
)

var e164Regex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`) // ITU-T E.164

// IsE164 reports basic E.164 compliance.
func IsE164(number string) bool { return e164Regex.MatchString(number) }

// NewTwilioClient returns nil when either credential is empty.
func NewTwilioClient(accountSID, authToken string) *twilio.RestClient {
	if accountSID == "" || authToken == "" {
		return nil
	}
	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
}

// ValidatePhoneNumber validates `number`.
//
//   - It must be in E.164 form.
//   - If validateWithTwilio is set and tw is non-nil, a Twilio Lookups v2
//     fetch must also succeed. A 404 from Twilio means "not a real number"
//     and yields (false, nil); any other failure is returned wrapped in
//     ErrExternalServiceFailure.
func ValidatePhoneNumber(
	ctx context.Context,
	number string,
	validateWithTwilio bool,
	tw *twilio.RestClient,
) (bool, error) {
	if !IsE164(number) {
		return false, nil
	}
	if !validateWithTwilio || tw == nil {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := tw.LookupsV2.FetchPhoneNumber(number, &lookupsv2.FetchPhoneNumberParams{})
	if err == nil {
		return true, nil
	}
	if restErr, ok := err.(*twilioclient.TwilioRestError); ok {
		if restErr.Status == 404 {
			return false, nil
		}
		return false, fmt.Errorf("%w: twilio lookup failed: %d %s",
			ErrExternalServiceFailure, restErr.Status, restErr.Error())
	}
	return false, fmt.Errorf("%w: %v", ErrExternalServiceFailure, err)
}
