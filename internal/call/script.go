package call

import (
    "fmt"
    "strings"

    "dialout/internal/money"
    "dialout/internal/order"
)

// line is one scripted agent utterance.
type line struct {
    text     string
    awaiting bool // gates the script on an operator-chosen response
    resolve  bool // finalizes the call after the resolve delay
}

// branch is one row of the response transition table. The outcome and the
// staged registry update take effect when the branch's closing line fires,
// not when the operator clicks.
type branch struct {
    customerLine string
    outcome      Outcome
    update       *order.StatusUpdate
    followups    func(o order.Order, f *money.Formatter) []line
}

var branches = map[Response]branch{
    ResponseConfirm: {
        customerLine: "Yes, please go ahead.",
        outcome:      OutcomeConfirmed,
        update:       &order.StatusUpdate{Status: order.StatusConfirmed},
        followups: func(o order.Order, f *money.Formatter) []line {
            return []line{
                {text: fmt.Sprintf("Perfect. We will deliver order %s as planned, %s.", o.ID, o.DeliverySlot)},
                {text: "Thank you for confirming. Have a great day, goodbye!", resolve: true},
            }
        },
    },
    ResponseReschedule: {
        customerLine: "Could we deliver in a different slot?",
        outcome:      OutcomeRescheduled,
        followups: func(o order.Order, f *money.Formatter) []line {
            return []line{
                {text: "Of course. Which of these delivery windows suits you better?", awaiting: true},
            }
        },
    },
    ResponseCancel: {
        customerLine: "I want to cancel this order.",
        outcome:      OutcomeCancelled,
        update:       &order.StatusUpdate{Status: order.StatusCancelled},
        followups: func(o order.Order, f *money.Formatter) []line {
            return []line{
                {text: "I'm sorry to hear that. I will cancel the order for you right away."},
                {text: fmt.Sprintf("Order %s has been cancelled. Goodbye!", o.ID), resolve: true},
            }
        },
    },
    ResponseQuery: {
        customerLine: "Can you tell me the payment details once more?",
        outcome:      OutcomeNone,
        followups: func(o order.Order, f *money.Formatter) []line {
            return []line{
                {text: fmt.Sprintf("Certainly. The total is %s, to be paid by %s.", f.Format(o.TotalCents, o.Currency), o.PaymentMethod)},
                {text: "Shall we go ahead with the delivery?", awaiting: true},
            }
        },
    },
}

// openingLines is the fixed start of every call: name the order and total,
// then list the items and ask for confirmation.
func openingLines(o order.Order, f *money.Formatter) []line {
    return []line{
        {text: fmt.Sprintf("Hello %s, this is the delivery desk calling about your order %s for a total of %s.",
            o.CustomerName, o.ID, f.Format(o.TotalCents, o.Currency))},
        {text: fmt.Sprintf("The order contains %s, scheduled for delivery %s. Shall we go ahead?",
            itemSummary(o.Items), o.DeliverySlot), awaiting: true},
    }
}

func dialingLine(o order.Order) string {
    return fmt.Sprintf("Dialing %s (%s)...", o.PhoneNumber, o.CustomerName)
}

func slotLines(slot string) []line {
    return []line{
        {text: fmt.Sprintf("Great, I have moved your delivery to %s.", slot)},
        {text: "Thank you, we will see you then. Goodbye!", resolve: true},
    }
}

func slotChosenLine(slot string) string {
    return fmt.Sprintf("%s works for me.", slot)
}

const escalationLine = "I will transfer you to a colleague from support who can help you further. One moment please."

// SlotOptions is the fixed menu of delivery windows offered on reschedule.
var SlotOptions = []string{
    "Tomorrow 09:00-12:00",
    "Tomorrow 14:00-17:00",
    "Friday 09:00-12:00",
    "Saturday 09:00-12:00",
}

func itemSummary(items []order.Item) string {
    parts := make([]string, 0, len(items))
    for _, it := range items {
        parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
    }
    if len(parts) == 0 {
        return "no items"
    }
    if len(parts) == 1 {
        return parts[0]
    }
    return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}
