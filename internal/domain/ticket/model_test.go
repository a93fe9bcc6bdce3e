package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusChecked, ParseStatus("checked"))
	assert.Equal(t, StatusChecked, ParseStatus(" Checked "))
	assert.Equal(t, StatusInvalid, ParseStatus("INVALID"))
	assert.Equal(t, StatusUnchecked, ParseStatus(""))
	assert.Equal(t, StatusUnchecked, ParseStatus("pending"))
}

func TestScanned(t *testing.T) {
	assert.True(t, Ticket{Status: StatusChecked}.Scanned())
	assert.True(t, Ticket{Status: StatusInvalid}.Scanned())
	assert.False(t, Ticket{Status: StatusUnchecked}.Scanned())
}

func TestApplyDetail_DetailWins(t *testing.T) {
	tk := Ticket{
		TicketID:     1,
		QRCode:       "QR-1",
		CustomerName: "Sam",
		Status:       StatusChecked,
	}
	tk.ApplyDetail(Detail{
		TicketID:    1,
		RawStatus:   "invalid",
		TicketType:  "VIP",
		CheckinTime: "July 10, 2025 2:34 pm",
	})

	assert.Equal(t, StatusInvalid, tk.Status)
	assert.Equal(t, "VIP", tk.TicketType)
	assert.Equal(t, "July 10, 2025 2:34 pm", tk.CheckinTime)
	// Untouched fields survive.
	assert.Equal(t, "Sam", tk.CustomerName)
}

func TestApplyDetail_EmptyNeverRegresses(t *testing.T) {
	tk := Ticket{
		TicketID:     5,
		QRCode:       "QR-5",
		CustomerName: "Sam",
		Email:        "sam@test.com",
		Status:       StatusChecked,
		TicketType:   "GA",
	}
	tk.ApplyDetail(Detail{})

	assert.Equal(t, 5, tk.TicketID)
	assert.Equal(t, "QR-5", tk.QRCode)
	assert.Equal(t, "Sam", tk.CustomerName)
	assert.Equal(t, "sam@test.com", tk.Email)
	// An absent status is not the same as unchecked.
	assert.Equal(t, StatusChecked, tk.Status)
	assert.Equal(t, "GA", tk.TicketType)
}

func TestCheckinUnix(t *testing.T) {
	assert.Equal(t, int64(-1), CheckinUnix(""))
	assert.Equal(t, int64(-1), CheckinUnix("not a date"))
	assert.Positive(t, CheckinUnix("July 10, 2025 2:34 pm"))
	assert.Positive(t, CheckinUnix("2025-07-10 14:34:00"))

	earlier := CheckinUnix("July 10, 2025 9:00 am")
	later := CheckinUnix("July 10, 2025 10:00 am")
	assert.Less(t, earlier, later)
}

func TestDecodeTitle(t *testing.T) {
	assert.Equal(t, "Food & Wine", DecodeTitle("Food &#038; Wine"))
	assert.Equal(t, "Gala – Night", DecodeTitle("Gala &#8211; Night"))
	assert.Equal(t, "A B", DecodeTitle("A&nbsp;B"))
	assert.Equal(t, "", DecodeTitle(""))
	assert.Equal(t, "Plain", DecodeTitle("  Plain  "))
}
