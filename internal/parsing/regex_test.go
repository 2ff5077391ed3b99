package parsing

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RegexExtractor", func() {
	var (
		extractor   *RegexExtractor
		receiptText string
		receipt     *Receipt
		err         error
	)

	BeforeEach(func() {
		extractor = NewRegexExtractor()
	})

	JustBeforeEach(func() {
		receipt, err = extractor.ExtractItems(receiptText)
	})

	When("parsing a full receipt", func() {
		BeforeEach(func() {
			receiptText = strings.Join([]string{
				"Order# 200012345678901",
				"Bananas Shopped Qty 2 $1.48",
				"Great Value Whole Milk Unavailable Qty 1 $3.99",
				"Fresh Chicken Breast Weight-adjusted Qty 1 $8.63",
				"Subtotal $14.10",
				"Tax $3.27",
				"Driver tip $5.00",
				"Total $22.37",
			}, "\n")
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should extract the items in order of appearance", func() {
			Expect(receipt.Items).To(Equal([]ReceiptItem{
				{Name: "Bananas", Price: 1.48},
				{Name: "Great Value Whole Milk", Price: 3.99},
				{Name: "Fresh Chicken Breast", Price: 8.63},
				{Name: "Tax", Price: 3.27},
			}))
		})

		It("should never emit a metadata line as an item", func() {
			for _, item := range receipt.Items {
				Expect(item.Name).NotTo(ContainSubstring("Subtotal"))
				Expect(item.Name).NotTo(ContainSubstring("Total"))
				Expect(item.Name).NotTo(ContainSubstring("Order#"))
				Expect(item.Name).NotTo(ContainSubstring("Driver tip"))
			}
		})

		It("should be idempotent", func() {
			again, againErr := extractor.ExtractItems(receiptText)
			Expect(againErr).NotTo(HaveOccurred())
			Expect(again).To(Equal(receipt))
		})
	})

	When("a strict match exists alongside loose-only lines", func() {
		BeforeEach(func() {
			receiptText = "Bananas Shopped Qty 2 $1.48\nCandy Bar $2.00"
		})

		It("should not apply the trailing-price fallback", func() {
			Expect(receipt.Items).To(Equal([]ReceiptItem{
				{Name: "Bananas", Price: 1.48},
			}))
		})
	})

	When("no strict rule matches", func() {
		BeforeEach(func() {
			receiptText = "Candy Bar $2.00\nSparkling Water $1.25"
		})

		It("should fall back to the trailing-price rule", func() {
			Expect(receipt.Items).To(Equal([]ReceiptItem{
				{Name: "Candy Bar", Price: 2.00},
				{Name: "Sparkling Water", Price: 1.25},
			}))
		})
	})

	When("the receipt only contains summary lines", func() {
		BeforeEach(func() {
			receiptText = "Subtotal $45.00\nTotal $48.27"
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return an empty item list", func() {
			Expect(receipt.Items).To(BeEmpty())
		})
	})

	When("a loose capture names a summary line", func() {
		BeforeEach(func() {
			receiptText = "Service tip $4.00\nCandy Bar $2.00"
		})

		It("should reject the summary capture and keep the item", func() {
			Expect(receipt.Items).To(Equal([]ReceiptItem{
				{Name: "Candy Bar", Price: 2.00},
			}))
		})
	})

	When("the input is empty", func() {
		BeforeEach(func() {
			receiptText = ""
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return an empty item list, not nil", func() {
			Expect(receipt.Items).NotTo(BeNil())
			Expect(receipt.Items).To(BeEmpty())
		})
	})

	Describe("Close", func() {
		It("should not return an error", func() {
			Expect(extractor.Close()).NotTo(HaveOccurred())
		})
	})
})
