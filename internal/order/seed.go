package order

// Seed returns a registry loaded with the demo data set.
func Seed() *Registry {
    r := NewRegistry()
    r.add(Order{
        ID:           "ORD-1042",
        CustomerName: "Maya Castillo",
        PhoneNumber:  "+1 415 555 0142",
        Address:      "2201 Harrison St, San Francisco, CA",
        Items: []Item{
            {Name: "Espresso grinder", Quantity: 1},
            {Name: "Single-origin beans 1kg", Quantity: 2},
        },
        TotalCents:    18450,
        Currency:      "USD",
        PaymentMethod: "card on file",
        DeliverySlot:  "Tomorrow 09:00-12:00",
        Status:        StatusPending,
    })
    r.add(Order{
        ID:           "ORD-1043",
        CustomerName: "Jordan Lee",
        PhoneNumber:  "+1 628 555 0199",
        Address:      "850 Bryant St, San Francisco, CA",
        Notes:        "Leave with the doorman if out",
        Items: []Item{
            {Name: "Standing desk frame", Quantity: 1},
        },
        TotalCents:    42999,
        Currency:      "USD",
        PaymentMethod: "cash on delivery",
        DeliverySlot:  "Tomorrow 14:00-17:00",
        Status:        StatusPending,
    })
    r.add(Order{
        ID:           "ORD-1044",
        CustomerName: "Priya Raman",
        PhoneNumber:  "+1 510 555 0127",
        Address:      "1400 Shattuck Ave, Berkeley, CA",
        Items: []Item{
            {Name: "Ceramic dinner set", Quantity: 1},
            {Name: "Linen napkins", Quantity: 6},
        },
        TotalCents:    12725,
        Currency:      "USD",
        PaymentMethod: "card on file",
        DeliverySlot:  "Friday 09:00-12:00",
        Status:        StatusPending,
    })
    return r
}
