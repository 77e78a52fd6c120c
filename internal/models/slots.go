package models

import "fmt"

const (
	firstSlotHour = 6
	slotsPerDay   = 16
)

// GenerateSlots returns the daily hourly slots from 06:00 AM to 09:00 PM,
// all available at basePrice.
func GenerateSlots(basePrice float64) []TimeSlot {
	slots := make([]TimeSlot, 0, slotsPerDay)
	for i := 0; i < slotsPerDay; i++ {
		slots = append(slots, TimeSlot{
			Time:      slotLabel(firstSlotHour + i),
			Available: true,
			Price:     basePrice,
		})
	}
	return slots
}

// RepriceSlots returns a copy of slots with every price set to price.
// Availability is left as is.
func RepriceSlots(slots []TimeSlot, price float64) []TimeSlot {
	out := make([]TimeSlot, len(slots))
	for i, slot := range slots {
		slot.Price = price
		out[i] = slot
	}
	return out
}

func slotLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour
	if display > 12 {
		display -= 12
	}
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%02d:00 %s", display, suffix)
}
