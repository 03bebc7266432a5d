package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() *Order {
	return NewOrder("u1", []Item{{BookID: "b1", Title: "Dune", Price: 10000, Quantity: 2}},
		ShippingAddress{}, PaymentCOD, 20000)
}

func TestCalculateCharges(t *testing.T) {
	tests := []struct {
		subtotal int64
		want     Charges
	}{
		{60000, Charges{Subtotal: 60000, Tax: 6000, Shipping: 0, Total: 66000}},
		{20000, Charges{Subtotal: 20000, Tax: 2000, Shipping: 5000, Total: 27000}},
		{50000, Charges{Subtotal: 50000, Tax: 5000, Shipping: 5000, Total: 60000}},
		{1005, Charges{Subtotal: 1005, Tax: 101, Shipping: 5000, Total: 6106}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateCharges(tt.subtotal))
	}
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder()

	assert.NotEmpty(t, o.ID)
	assert.Regexp(t, `^ORD\d{16}$`, o.OrderNo)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	assert.Equal(t, int64(27000), o.TotalAmount)
	assert.Equal(t, o.Subtotal, o.ItemsTotal())
	assert.True(t, o.Contains("b1"))
}

func TestOrder_TransitionTo(t *testing.T) {
	o := newTestOrder()

	assert.ErrorIs(t, o.TransitionTo(StatusDelivered, StatusUpdate{}), ErrInvalidStatusTransition)
	assert.ErrorIs(t, o.TransitionTo(StatusPending, StatusUpdate{}), ErrInvalidStatusTransition)
	assert.ErrorIs(t, o.TransitionTo("Lost", StatusUpdate{}), ErrInvalidStatus)

	require.NoError(t, o.TransitionTo(StatusProcessing, StatusUpdate{}))
	require.NoError(t, o.TransitionTo(StatusShipped, StatusUpdate{TrackingNumber: "TRK1"}))
	assert.Equal(t, "TRK1", o.TrackingNumber)

	require.NoError(t, o.TransitionTo(StatusDelivered, StatusUpdate{}))
	assert.NotNil(t, o.DeliveredAt)

	assert.ErrorIs(t, o.TransitionTo(StatusCancelled, StatusUpdate{}), ErrInvalidStatusTransition)
}

func TestOrder_Cancel(t *testing.T) {
	o := newTestOrder()
	require.NoError(t, o.TransitionTo(StatusCancelled, StatusUpdate{}))

	assert.NotNil(t, o.CancelledAt)
	assert.Equal(t, DefaultCancellationReason, o.CancellationReason)

	o2 := newTestOrder()
	require.NoError(t, o2.TransitionTo(StatusCancelled, StatusUpdate{Reason: "customer request"}))
	assert.Equal(t, "customer request", o2.CancellationReason)
}

func TestOrder_MarkPaid(t *testing.T) {
	o := newTestOrder()

	assert.True(t, o.MarkPaid())
	assert.Equal(t, PaymentPaid, o.PaymentStatus)
	paidAt := *o.PaidAt

	assert.False(t, o.MarkPaid())
	assert.Equal(t, paidAt, *o.PaidAt)

	// 支付状态与订单状态相互独立
	cancelled := newTestOrder()
	require.NoError(t, cancelled.TransitionTo(StatusCancelled, StatusUpdate{}))
	assert.True(t, cancelled.MarkPaid())
	assert.Equal(t, PaymentPaid, cancelled.PaymentStatus)
	assert.Equal(t, StatusCancelled, cancelled.Status)
}

func TestOrder_ShippedTrackingCorrection(t *testing.T) {
	o := newTestOrder()
	require.NoError(t, o.TransitionTo(StatusProcessing, StatusUpdate{}))
	assert.ErrorIs(t, o.TransitionTo(StatusProcessing, StatusUpdate{}), ErrInvalidStatusTransition)

	require.NoError(t, o.TransitionTo(StatusShipped, StatusUpdate{TrackingNumber: "TRK1"}))
	require.NoError(t, o.TransitionTo(StatusShipped, StatusUpdate{TrackingNumber: "TRK2"}))
	assert.Equal(t, "TRK2", o.TrackingNumber)
	assert.Equal(t, StatusShipped, o.Status)

	// 未提供单号时保留原值
	require.NoError(t, o.TransitionTo(StatusShipped, StatusUpdate{}))
	assert.Equal(t, "TRK2", o.TrackingNumber)

	require.NoError(t, o.TransitionTo(StatusDelivered, StatusUpdate{}))
	assert.ErrorIs(t, o.TransitionTo(StatusDelivered, StatusUpdate{}), ErrInvalidStatusTransition)
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, PaymentCOD, m)

	m, err = ParsePaymentMethod("UPI")
	require.NoError(t, err)
	assert.Equal(t, PaymentUPI, m)

	_, err = ParsePaymentMethod("Bitcoin")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestShippingAddress_Validate(t *testing.T) {
	addr := ShippingAddress{
		FullName: "Ann Lee", Address: "1 Main St", City: "Pune", State: "MH",
		PostalCode: "411001", Country: "India", Phone: "9999999999",
	}
	assert.NoError(t, addr.Validate())

	addr.City = " "
	assert.ErrorIs(t, addr.Validate(), ErrInvalidShippingAddress)
}

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)
}
