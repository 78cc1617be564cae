package ticket

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_VerifyRoundTrip(t *testing.T) {
	s := NewSigner("secret")
	in := Ticket{BookingID: 42, SlotID: 7, SpotCode: "M-007", EntryTime: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}

	out, err := s.Verify(s.Payload(in))

	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestSigner_RejectsTamperedPayload(t *testing.T) {
	s := NewSigner("secret")
	payload := s.Payload(Ticket{BookingID: 42, SlotID: 7, SpotCode: "M-007", EntryTime: time.Unix(0, 0)})

	tampered := strings.Replace(payload, "42|", "43|", 1)
	_, err := s.Verify(tampered)
	assert.ErrorIs(t, err, ErrBadSignature)

	_, err = NewSigner("other").Verify(payload)
	assert.ErrorIs(t, err, ErrBadSignature)

	_, err = s.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestSigner_QRCodeIsPNG(t *testing.T) {
	png, err := NewSigner("secret").QRCode(Ticket{BookingID: 1, SlotID: 1, SpotCode: "G-001", EntryTime: time.Now()}, 0)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
