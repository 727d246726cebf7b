package order

// Status is the lifecycle state of an order as seen by the confirmation flow.
type Status string

const (
    StatusPending          Status = "pending"
    StatusConfirmed        Status = "confirmed"
    StatusRequiresFollowup Status = "requires_followup"
    StatusCancelled        Status = "cancelled"
)

// Item is one line item on an order.
type Item struct {
    Name     string `json:"name"`
    Quantity int    `json:"quantity"`
}

// Order is a customer order pending outbound confirmation.
type Order struct {
    ID            string `json:"id"`
    CustomerName  string `json:"customer_name"`
    PhoneNumber   string `json:"phone_number"`
    Address       string `json:"address"`
    Notes         string `json:"notes,omitempty"`
    Items         []Item `json:"items"`
    TotalCents    int64  `json:"total_cents"`
    Currency      string `json:"currency"`
    PaymentMethod string `json:"payment_method"`
    DeliverySlot  string `json:"delivery_slot"`
    Status        Status `json:"status"`
}
