package utils

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	SetHashCost(bcrypt.MinCost)
	t.Cleanup(func() { SetHashCost(bcrypt.DefaultCost) })

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
	assert.False(t, CheckPasswordHash("secret1", "not-a-hash"))

	again, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes are salted")
}

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef")
	raw, err := SignSessionToken(secret, "sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	sid, err := ParseSessionToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)
}

func TestSessionTokenRejectsTampering(t *testing.T) {
	secret := []byte("0123456789abcdef")
	raw, err := SignSessionToken(secret, "sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = ParseSessionToken([]byte("another-secret-value"), raw)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = ParseSessionToken(secret, raw+"x")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = ParseSessionToken(secret, "garbage")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionTokenExpired(t *testing.T) {
	secret := []byte("0123456789abcdef")
	raw, err := SignSessionToken(secret, "sid-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseSessionToken(secret, raw)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(32)
	require.NoError(t, err)
	b, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestComputeBMI(t *testing.T) {
	bmi, err := ComputeBMI(180, 81)
	require.NoError(t, err)
	assert.Equal(t, BMI{Value: 25.0, Category: "Overweight"}, bmi)

	_, err = ComputeBMI(0, 70)
	assert.ErrorIs(t, err, ErrImplausibleBody)
	_, err = ComputeBMI(30, 70)
	assert.ErrorIs(t, err, ErrImplausibleBody)
}

func TestBMICategoryBands(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{17, "Underweight"},
		{18.5, "Healthy"},
		{24.9, "Healthy"},
		{29.9, "Overweight"},
		{30, "Obese"},
		{45, "Obese"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bmiCategory(tt.value), tt.value)
	}
}

type fakeSES struct {
	in  *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	return &ses.SendEmailOutput{}, f.err
}

func TestSESMailerSendWelcome(t *testing.T) {
	fake := &fakeSES{}
	m := &SESMailer{client: fake, from: "noreply@example.com"}

	require.NoError(t, m.SendWelcome(context.Background(), "alice@example.com", "alice"))
	require.NotNil(t, fake.in)
	assert.Equal(t, []string{"alice@example.com"}, fake.in.Destination.ToAddresses)
	assert.Equal(t, "noreply@example.com", aws.ToString(fake.in.Source))
	assert.True(t, strings.Contains(aws.ToString(fake.in.Message.Body.Text.Data), "alice"))

	fake.err = errors.New("throttled")
	assert.Error(t, m.SendWelcome(context.Background(), "alice@example.com", "alice"))
}
