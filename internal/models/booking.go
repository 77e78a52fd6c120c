package models

import "crypto/rand"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every status a booking may carry.
var BookingStatuses = []BookingStatus{StatusConfirmed, StatusCompleted, StatusCancelled}

func ValidBookingStatus(s string) bool {
	for _, status := range BookingStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

const PinLength = 6

// GeneratePin returns PinLength random decimal digits.
func GeneratePin() string {
	var buf [PinLength]byte
	// crypto/rand.Read does not fail on supported platforms.
	_, _ = rand.Read(buf[:])
	for i := range buf {
		buf[i] = '0' + buf[i]%10
	}
	return string(buf[:])
}
