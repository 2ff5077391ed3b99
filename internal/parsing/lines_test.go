package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("normalizeLines", func() {
	var (
		text  string
		lines []string
	)

	JustBeforeEach(func() {
		lines = normalizeLines(text)
	})

	When("input has surrounding whitespace and blank lines", func() {
		BeforeEach(func() {
			text = "  Bananas Shopped Qty 2 $1.48  \n\n   \nTax $3.27\n"
		})

		It("should trim each line", func() {
			Expect(lines[0]).To(Equal("Bananas Shopped Qty 2 $1.48"))
		})

		It("should drop blank lines", func() {
			Expect(lines).To(HaveLen(2))
		})

		It("should preserve the original order", func() {
			Expect(lines).To(Equal([]string{"Bananas Shopped Qty 2 $1.48", "Tax $3.27"}))
		})
	})

	When("input is empty", func() {
		BeforeEach(func() {
			text = ""
		})

		It("should return no lines", func() {
			Expect(lines).To(BeEmpty())
		})
	})

	When("input is only whitespace", func() {
		BeforeEach(func() {
			text = "   \n\t\n  "
		})

		It("should return no lines", func() {
			Expect(lines).To(BeEmpty())
		})
	})
})

var _ = Describe("isMetadataLine", func() {
	It("should match order number lines", func() {
		Expect(isMetadataLine("Order# 1234567")).To(BeTrue())
	})

	It("should match subtotal lines", func() {
		Expect(isMetadataLine("Subtotal $45.00")).To(BeTrue())
	})

	It("should match total lines", func() {
		Expect(isMetadataLine("Total $48.27")).To(BeTrue())
	})

	It("should match driver tip lines", func() {
		Expect(isMetadataLine("Driver tip $5.00")).To(BeTrue())
	})

	It("should match delivery lines regardless of case", func() {
		Expect(isMetadataLine("Express Delivery fee $9.95")).To(BeTrue())
	})

	It("should match payment method lines regardless of case", func() {
		Expect(isMetadataLine("Payment Method ending in 1234")).To(BeTrue())
	})

	It("should not match item lines", func() {
		Expect(isMetadataLine("Bananas Shopped Qty 2 $1.48")).To(BeFalse())
	})

	It("should not match the tax line", func() {
		Expect(isMetadataLine("Tax $3.27")).To(BeFalse())
	})
})
