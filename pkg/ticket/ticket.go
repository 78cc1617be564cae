package ticket

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

// DefaultSize размер PNG по умолчанию в пикселях
const DefaultSize = 256

var (
	// ErrInvalidPayload возвращается при разборе повреждённой строки билета
	ErrInvalidPayload = errors.New("ticket: invalid payload")

	// ErrBadSignature возвращается, если подпись билета не совпала
	ErrBadSignature = errors.New("ticket: bad signature")
)

// Ticket данные въездного билета, которые сканирует шлагбаум
type Ticket struct {
	BookingID int64
	SlotID    int64
	SpotCode  string
	EntryTime time.Time
}

// Signer подписывает и проверяет билеты
type Signer struct {
	secret []byte
}

// NewSigner создает подписчик с секретом HMAC
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Payload формирует строку "booking|slot|spot|entry|signature"
func (s *Signer) Payload(t Ticket) string {
	data := fmt.Sprintf("%d|%d|%s|%d", t.BookingID, t.SlotID, t.SpotCode, t.EntryTime.Unix())
	return data + "|" + s.sign(data)
}

// Verify проверяет подпись и разбирает payload обратно в билет
func (s *Signer) Verify(payload string) (*Ticket, error) {
	idx := strings.LastIndex(payload, "|")
	if idx <= 0 {
		return nil, ErrInvalidPayload
	}
	data, signature := payload[:idx], payload[idx+1:]

	if !hmac.Equal([]byte(signature), []byte(s.sign(data))) {
		return nil, ErrBadSignature
	}

	parts := strings.Split(data, "|")
	if len(parts) != 4 {
		return nil, ErrInvalidPayload
	}

	bookingID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: booking id: %v", ErrInvalidPayload, err)
	}
	slotID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: slot id: %v", ErrInvalidPayload, err)
	}
	entry, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: entry time: %v", ErrInvalidPayload, err)
	}

	return &Ticket{
		BookingID: bookingID,
		SlotID:    slotID,
		SpotCode:  parts[2],
		EntryTime: time.Unix(entry, 0).UTC(),
	}, nil
}

// QRCode возвращает PNG с QR кодом подписанного билета
func (s *Signer) QRCode(t Ticket, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(s.Payload(t), qrcode.Medium, size)
}

func (s *Signer) sign(data string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
