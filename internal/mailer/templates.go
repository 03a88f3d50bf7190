package mailer

import (
	"fmt"
	"html"
	"strings"

	"github.com/cleanmart/backend/pkg/db/models"
)

// renderCustomerEmail builds the bilingual order confirmation sent to the
// shopper. Hebrew copy first, Arabic below it, both right-to-left.
func renderCustomerEmail(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("אישור הזמנה #%s | تأكيد الطلب", shortID(order))

	var b strings.Builder
	b.WriteString(`<div dir="rtl" style="font-family:Arial,sans-serif">`)
	fmt.Fprintf(&b, "<h2>תודה על הזמנתך, %s!</h2>", html.EscapeString(order.CustomerInfo.FullName))
	fmt.Fprintf(&b, "<p>הזמנה מספר <b>%s</b> התקבלה ותטופל בהקדם.</p>", shortID(order))
	fmt.Fprintf(&b, "<h2>شكراً لطلبك، %s!</h2>", html.EscapeString(order.CustomerInfo.FullName))
	fmt.Fprintf(&b, "<p>تم استلام الطلب رقم <b>%s</b> وسيتم تجهيزه قريباً.</p>", shortID(order))

	writeItemsTable(&b, order)

	fmt.Fprintf(&b, "<p><b>סה\"כ | المجموع: ₪%d</b></p>", order.Total)
	fmt.Fprintf(&b, "<p>כתובת למשלוח | عنوان التوصيل: %s, %s</p>",
		html.EscapeString(order.CustomerInfo.Address),
		html.EscapeString(order.CustomerInfo.City),
	)
	b.WriteString("</div>")
	return subject, b.String()
}

// renderAdminEmail builds the new-order notification for the store staff.
func renderAdminEmail(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("הזמנה חדשה #%s", shortID(order))

	var b strings.Builder
	b.WriteString(`<div dir="rtl" style="font-family:Arial,sans-serif">`)
	fmt.Fprintf(&b, "<h2>התקבלה הזמנה חדשה #%s</h2>", shortID(order))
	fmt.Fprintf(&b, "<p>לקוח: %s (%s)</p>",
		html.EscapeString(order.CustomerInfo.FullName),
		html.EscapeString(order.CustomerInfo.Email),
	)
	fmt.Fprintf(&b, "<p>טלפון: %s</p>", html.EscapeString(order.CustomerInfo.Phone))
	fmt.Fprintf(&b, "<p>כתובת: %s, %s</p>",
		html.EscapeString(order.CustomerInfo.Address),
		html.EscapeString(order.CustomerInfo.City),
	)
	fmt.Fprintf(&b, "<p>אמצעי תשלום: %s</p>", order.PaymentMethod)

	writeItemsTable(&b, order)

	fmt.Fprintf(&b, "<p><b>סה\"כ: ₪%d</b></p>", order.Total)
	b.WriteString("</div>")
	return subject, b.String()
}

func writeItemsTable(b *strings.Builder, order *models.Order) {
	b.WriteString(`<table border="1" cellpadding="6" style="border-collapse:collapse">`)
	b.WriteString("<tr><th>מוצר | المنتج</th><th>כמות | الكمية</th><th>מחיר | السعر</th></tr>")
	for _, item := range order.Items {
		fmt.Fprintf(b, "<tr><td>%s | %s</td><td>%d</td><td>₪%d</td></tr>",
			html.EscapeString(item.Name),
			html.EscapeString(item.NameAr),
			item.Quantity,
			item.UnitPrice*int64(item.Quantity),
		)
	}
	b.WriteString("</table>")
}

func shortID(order *models.Order) string {
	id := order.ID.String()
	if len(id) >= 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
