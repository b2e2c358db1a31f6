package service

import (
	"fmt"
	"strings"

	"github.com/Liamshmuel20/Rant.GO/lifecycle"
	"github.com/Liamshmuel20/Rant.GO/model"
)

// shekels formats agorot as a shekel amount with two decimals.
func shekels(agorot int64) string {
	return fmt.Sprintf("%d.%02d", agorot/100, agorot%100)
}

// RenderContractText builds the Hebrew contract body frozen into the
// contract record at approval. Later pages only redisplay this text.
func RenderContractText(c *model.Contract, q *lifecycle.Quote) string {
	start := c.StartDate.Format("02/01/2006")
	end := c.EndDate.Format("02/01/2006")

	var b strings.Builder
	b.WriteString("חוזה השכרה\n\n")
	fmt.Fprintf(&b, "המשכיר: %s, ת\"ז: %s\n", c.LandlordName, c.LandlordID)
	b.WriteString("לבין\n")
	fmt.Fprintf(&b, "השוכר: %s, ת\"ז: %s\n\n", c.TenantName, c.TenantID)

	b.WriteString("1. פרטי העסקה:\n")
	fmt.Fprintf(&b, "תיאור המוצר: %s\n", c.ProductDescription)
	fmt.Fprintf(&b, "תקופת השכירות: מ-%s ועד %s\n\n", start, end)

	b.WriteString("2. פירוט תשלומים:\n")
	fmt.Fprintf(&b, "עלות השכירות הכוללת: %s ₪\n", shekels(q.TotalPrice))
	fmt.Fprintf(&b, "עמלת Rent.GO (%d%%): %s ₪\n", q.CommissionBps/100, shekels(q.CommissionAmount))
	fmt.Fprintf(&b, "סכום שיועבר למשכיר: %s ₪\n\n", shekels(q.LandlordPayout))

	b.WriteString("3. אחריות לנזק:\n")
	fmt.Fprintf(&b, "במקרה של נזק – השוכר ישלם פיצוי של %s ₪.\n\n", shekels(c.DamageCompensationAmount))

	b.WriteString("4. החזרת המוצר:\n")
	b.WriteString("השוכר מתחייב להחזיר את המוצר תקין ובזמן.\n\n")

	b.WriteString("5. תנאים כלליים:\n")
	b.WriteString("• השוכר אחראי לשמירה על המוצר ולשימוש בו בצורה נאותה\n")
	b.WriteString("• במקרה של איחור בהחזרה, יגבה תשלום נוסף לפי התעריף היומי\n")
	b.WriteString("• הסכם זה כפוף לחוקי מדינת ישראל\n\n")

	b.WriteString("חוזה זה נוצר באמצעות Rent.GO\n")
	return b.String()
}
