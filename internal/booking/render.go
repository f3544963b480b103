package booking

import (
	"fmt"
	"strings"
)

// entityCode is fixed by the receiving time-booking system.
const entityCode = "330R"

const transferBookingTemplate = `<?xml version="1.0" ?>
<transferBooking version="1.0">
  <interval>
    <employee>
      <userSign>%s</userSign>
    </employee>
    <bookings>
      <booking>
        <entityCode>%s</entityCode>
        <barcode>%s</barcode>
        <timePeriod>
          <entryStart>%s</entryStart>
          <entryEnd>%s</entryEnd>
        </timePeriod>
      </booking>
    </bookings>
  </interval>
</transferBooking>`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// RenderXML produces the transferBooking document for one validated request.
// userSign and barcode come from user input and are entity-escaped; the
// timestamps already passed the strict digit pattern and need no escaping.
func RenderXML(userSign, barcode, entryStart, entryEnd string) string {
	return fmt.Sprintf(transferBookingTemplate,
		xmlEscaper.Replace(userSign),
		entityCode,
		xmlEscaper.Replace(barcode),
		entryStart,
		entryEnd,
	)
}
