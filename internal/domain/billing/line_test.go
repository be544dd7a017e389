package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeLine(t *testing.T) {
	t.Run("qty=2 rate=50 discount=10% gst=12%", func(t *testing.T) {
		lt := ComputeLine(dec("2"), dec("50"), dec("10"), dec("12"))

		assert.Equal(t, "100.00", lt.Gross.StringFixed(2))
		assert.Equal(t, "10.00", lt.DiscountAmount.StringFixed(2))
		assert.Equal(t, "90.00", lt.TaxableAmount.StringFixed(2))
		assert.Equal(t, "5.40", lt.CGST.StringFixed(2))
		assert.Equal(t, "5.40", lt.SGST.StringFixed(2))
		assert.Equal(t, "0.00", lt.IGST.StringFixed(2))
		assert.Equal(t, "100.80", lt.Total.StringFixed(2))
	})

	t.Run("total equals taxable plus taxes for awkward inputs", func(t *testing.T) {
		cases := []struct{ qty, rate, disc, gst string }{
			{"3", "33.33", "7.5", "18"},
			{"1", "0.01", "0", "5"},
			{"7", "99.99", "12.5", "28"},
			{"13", "10.05", "2.5", "12"},
		}
		for _, tc := range cases {
			lt := ComputeLine(dec(tc.qty), dec(tc.rate), dec(tc.disc), dec(tc.gst))
			sum := lt.TaxableAmount.Add(lt.CGST).Add(lt.SGST).Add(lt.IGST)
			assert.True(t, lt.Total.Equal(Round2(sum)),
				"qty=%s rate=%s: total %s != %s", tc.qty, tc.rate, lt.Total, sum)
		}
	})

	t.Run("CGST and SGST each take half the nominal GST rate", func(t *testing.T) {
		lt := ComputeLine(dec("1"), dec("200"), dec("0"), dec("18"))
		assert.Equal(t, "18.00", lt.CGST.StringFixed(2))
		assert.Equal(t, lt.CGST.String(), lt.SGST.String())
	})

	t.Run("intermediate rounding is applied stepwise", func(t *testing.T) {
		// 3 * 33.335 = 100.005 -> gross rounds to 100.01 before tax applies
		lt := ComputeLine(dec("3"), dec("33.335"), dec("0"), dec("0"))
		assert.Equal(t, "100.01", lt.Gross.StringFixed(2))
		assert.Equal(t, "100.01", lt.TaxableAmount.StringFixed(2))
	})
}

func TestNewLineItem(t *testing.T) {
	productID := uuid.New()

	t.Run("computes snapshot fields", func(t *testing.T) {
		li, err := NewLineItem(productID, "ITM001", "Paracetamol", dec("2"), dec("50"), dec("10"), dec("12"))
		require.NoError(t, err)
		assert.Equal(t, "10.00", li.DiscountAmount.StringFixed(2))
		assert.Equal(t, "90.00", li.TaxableAmount.StringFixed(2))
		assert.Equal(t, "100.80", li.Total.StringFixed(2))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewLineItem(productID, "ITM001", "Paracetamol", dec("0"), dec("50"), dec("0"), dec("12"))
		assert.Error(t, err)
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewLineItem(uuid.Nil, "ITM001", "Paracetamol", dec("1"), dec("50"), dec("0"), dec("12"))
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range percents", func(t *testing.T) {
		_, err := NewLineItem(productID, "ITM001", "Paracetamol", dec("1"), dec("50"), dec("101"), dec("12"))
		assert.Error(t, err)
		_, err = NewLineItem(productID, "ITM001", "Paracetamol", dec("1"), dec("50"), dec("0"), dec("-1"))
		assert.Error(t, err)
	})
}
