package services

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jsongrid/backend/internal/models"
)

// Example is a ready-made input offered to users who want to try the grid.
type Example struct {
	Label string      `json:"label"`
	Mode  models.Mode `json:"mode"`
	Value string      `json:"value"`
}

type person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type city struct {
	Name       string `json:"name"`
	Population int    `json:"population"`
}

type country struct {
	Country string   `json:"country"`
	Cities  []city   `json:"cities"`
	Codes   []string `json:"codes"`
}

type invoice struct {
	TransID      int     `json:"TransID"`
	BranchID     int     `json:"BranchID"`
	SalesRepID   int     `json:"SalesRepID"`
	InvDate      string  `json:"InvDate"`
	InvAmount    float64 `json:"InvAmount"`
	InvNote      string  `json:"InvNote"`
	SysInvID     int     `json:"SysInvID"`
	CustName     string  `json:"CustName"`
	SalesRepName string  `json:"SalesRepName"`
}

const iisLogExample = `#Software: Microsoft Internet Information Services 10.0
#Fields: date time s-sitename s-computername c-ip cs-method cs-uri-stem cs-uri-query s-port cs-username cs(User-Agent) cs(Referer) cs(Cookie) cs-host sc-status sc-substatus sc-win32-status sc-bytes cs-bytes time-taken
2024-03-15 08:21:07 W3SVC1 WEB01 192.168.1.20 GET /index.html - 443 - Mozilla/5.0 - - www.example.com 200 0 0 5120 412 31
2024-03-15 08:21:09 W3SVC1 WEB01 192.168.1.21 POST /api/orders id=42 443 jdoe Mozilla/5.0 https://www.example.com/ - www.example.com 201 0 0 890 1337 87
2024-03-15 08:22:41 W3SVC1 WEB01 10.0.0.7 GET /missing.png - 80 - curl/8.4.0 - - www.example.com 404 0 2 1245 198 4`

// Examples returns the built-in example inputs. The invoice example is
// generated afresh on every call.
func Examples() []Example {
	return []Example{
		{Label: "Array of objects", Mode: models.ModeJSON, Value: mustJSON([]person{
			{ID: 1, Name: "Alice", Age: 30},
			{ID: 2, Name: "Bob", Age: 25},
		})},
		{Label: "Nested arrays in objects", Mode: models.ModeJSON, Value: mustJSON([]country{
			{
				Country: "USA",
				Cities:  []city{{"New York", 8419000}, {"Los Angeles", 3980000}},
				Codes:   []string{"US", "USA"},
			},
			{
				Country: "Canada",
				Cities:  []city{{"Toronto", 2732000}, {"Vancouver", 675200}},
				Codes:   []string{"CA", "CAN"},
			},
		})},
		{Label: "Array of invoice objects", Mode: models.ModeJSON, Value: mustJSON(randomInvoices(4))},
		{Label: "Primitive (string)", Mode: models.ModeJSON, Value: mustJSON("Hello world")},
		{Label: "Primitive (number)", Mode: models.ModeJSON, Value: mustJSON(12345)},
		{Label: "Malformed example", Mode: models.ModeJSON, Value: `[{id:1, name:"NoQuotes"}]`},
		{Label: "IIS log (W3SVC)", Mode: models.ModeLog, Value: iisLogExample},
	}
}

// FindExample looks an example up by label, ignoring case.
func FindExample(label string) (Example, bool) {
	for _, ex := range Examples() {
		if strings.EqualFold(ex.Label, label) {
			return ex, true
		}
	}
	return Example{}, false
}

func randomInvoices(n int) []invoice {
	invoices := make([]invoice, 0, n)
	for i := 0; i < n; i++ {
		due := time.Now().Add(time.Duration(rand.Int63n(int64(365 * 24 * time.Hour))))
		invoices = append(invoices, invoice{
			TransID:      rand.Intn(100000),
			BranchID:     rand.Intn(10) + 1,
			SalesRepID:   rand.Intn(10) + 1,
			InvDate:      due.Format("2006-01-02") + "T00:00:00",
			InvAmount:    math.Round((rand.Float64()*1000+10)*100) / 100,
			InvNote:      "",
			SysInvID:     rand.Intn(100000) + 100000,
			CustName:     fmt.Sprintf("Random Customer %d", rand.Intn(100)),
			SalesRepName: fmt.Sprintf("Random Rep %d", rand.Intn(100)),
		})
	}
	return invoices
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
