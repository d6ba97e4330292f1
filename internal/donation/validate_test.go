package donation

import (
	"testing"

	"prismfund/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = types.ContributionLimits{Min: 25, Max: 500}

func validSubmission() PledgeSubmission {
	return PledgeSubmission{
		Amount:       50,
		DonorName:    "A B",
		DonorEmail:   "a@b.com",
		Category:     "general",
		DonationType: "one-time",
	}
}

func TestValidatePledgeAccepted(t *testing.T) {
	require.Nil(t, ValidatePledge(validSubmission(), testLimits))
}

func TestValidatePledgeAmountBounds(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		ok     bool
	}{
		{"below minimum", 24.99, false},
		{"at minimum", 25, true},
		{"inside range", 50, true},
		{"at maximum", 500, true},
		{"above maximum", 600, false},
		{"zero", 0, false},
		{"negative", -50, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			sub.Amount = tc.amount
			err := ValidatePledge(sub, testLimits)
			if tc.ok {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, CodeAmountOutOfRange, err.Code)
		})
	}
}

func TestValidatePledgeConfigurableLimits(t *testing.T) {
	// 600 is rejected with [25, 500] but accepted with [100, 100000]; the
	// bounds are configuration, not constants.
	sub := validSubmission()
	sub.Amount = 600

	err := ValidatePledge(sub, types.ContributionLimits{Min: 25, Max: 500})
	require.NotNil(t, err)
	assert.Equal(t, CodeAmountOutOfRange, err.Code)

	require.Nil(t, ValidatePledge(sub, types.ContributionLimits{Min: 100, Max: 100000}))
}

func TestValidatePledgeEmail(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"a@b.co", true},
		{"someone@example.org", true},
		{"not-an-email", false},
		{"missing@domain", false},
		{"@nodomain.com", false},
		{"spaces in@local.com", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			sub := validSubmission()
			sub.DonorEmail = tc.email
			err := ValidatePledge(sub, testLimits)
			if tc.ok {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, CodeInvalidEmail, err.Code)
		})
	}
}

func TestValidatePledgeName(t *testing.T) {
	sub := validSubmission()
	sub.DonorName = " "
	err := ValidatePledge(sub, testLimits)
	require.NotNil(t, err)
	assert.Equal(t, CodeMissingName, err.Code)

	sub.DonorName = "X"
	err = ValidatePledge(sub, testLimits)
	require.NotNil(t, err)
	assert.Equal(t, CodeMissingName, err.Code)
}

func TestValidatePledgeOrderFirstFailureWins(t *testing.T) {
	// Amount is checked before email, so a submission failing both reports
	// the amount rejection.
	sub := validSubmission()
	sub.Amount = 1
	sub.DonorEmail = "not-an-email"

	err := ValidatePledge(sub, testLimits)
	require.NotNil(t, err)
	assert.Equal(t, CodeAmountOutOfRange, err.Code)
}

func TestValidatePledgeCategoryAndType(t *testing.T) {
	sub := validSubmission()
	sub.Category = "miscellaneous"
	err := ValidatePledge(sub, testLimits)
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidCategory, err.Code)

	sub = validSubmission()
	sub.DonationType = "weekly"
	err = ValidatePledge(sub, testLimits)
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidType, err.Code)
}

func TestValidateConfirmation(t *testing.T) {
	require.Nil(t, ValidateConfirmation("5UfDu5ccy"))

	err := ValidateConfirmation("   ")
	require.NotNil(t, err)
	assert.Equal(t, CodeMissingTransactionHash, err.Code)
}

func TestValidateContact(t *testing.T) {
	valid := ContactSubmission{Name: "A B", Email: "a@b.com", Message: "hello"}
	require.Nil(t, ValidateContact(valid))

	long := valid
	long.Message = string(make([]byte, 2001))
	err := ValidateContact(long)
	require.NotNil(t, err)
	assert.Equal(t, CodeMessageTooLong, err.Code)

	noEmail := valid
	noEmail.Email = "not-an-email"
	err = ValidateContact(noEmail)
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidEmail, err.Code)
}

func TestValidateSubscriptionEmail(t *testing.T) {
	require.Nil(t, ValidateSubscriptionEmail("a@b.co"))
	require.NotNil(t, ValidateSubscriptionEmail("not-an-email"))
}
