package settings

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const reminderHour = 9

func NewNotification(typ, title, message, actionURL string, now time.Time) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: now,
		ActionURL: actionURL,
	}
}

// DailyCheckIn is the reminder posted every morning.
func DailyCheckIn(now time.Time) Notification {
	return NewNotification(NotificationReminder, "Daily Check-in",
		"How are you feeling today? Take a moment to track your mood.", "mood", now)
}

// NextReminder is the first 09:00 local time strictly after now.
func NextReminder(now time.Time) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), reminderHour, 0, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// AddNotification puts n first and keeps the newest MaxNotifications.
func (s Settings) AddNotification(n Notification) Settings {
	list := append([]Notification{n}, s.Notifications...)
	if len(list) > MaxNotifications {
		list = list[:MaxNotifications]
	}
	s.Notifications = list
	return s
}

func (s Settings) MarkRead(id string) Settings {
	list := slices.Clone(s.Notifications)
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
		}
	}
	s.Notifications = list
	return s
}

func (s Settings) RemoveNotification(id string) Settings {
	s.Notifications = slices.DeleteFunc(slices.Clone(s.Notifications), func(n Notification) bool { return n.ID == id })
	return s
}

func (s Settings) Unread() int {
	n := 0
	for _, x := range s.Notifications {
		if !x.Read {
			n++
		}
	}
	return n
}
