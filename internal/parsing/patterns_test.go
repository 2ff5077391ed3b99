package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("itemRule", func() {
	var (
		rule itemRule
		line string
		item ReceiptItem
		ok   bool
	)

	JustBeforeEach(func() {
		item, ok = rule.match(line)
	})

	Describe("tax rule", func() {
		BeforeEach(func() {
			rule = strictRules[0]
		})

		When("matching a tax line", func() {
			BeforeEach(func() {
				line = "Tax $3.27"
			})

			It("should match", func() {
				Expect(ok).To(BeTrue())
			})

			It("should synthesize an item named Tax", func() {
				Expect(item.Name).To(Equal("Tax"))
			})

			It("should capture the amount", func() {
				Expect(item.Price).To(Equal(3.27))
			})
		})

		When("the label has trailing text", func() {
			BeforeEach(func() {
				line = "Tax $3.27 estimated"
			})

			It("should not match", func() {
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("shopped quantity rule", func() {
		BeforeEach(func() {
			rule = strictRules[1]
		})

		When("matching a shopped item line", func() {
			BeforeEach(func() {
				line = "Bananas Shopped Qty 2 $1.48"
			})

			It("should match", func() {
				Expect(ok).To(BeTrue())
			})

			It("should capture the description", func() {
				Expect(item.Name).To(Equal("Bananas"))
			})

			It("should capture the price", func() {
				Expect(item.Price).To(Equal(1.48))
			})
		})

		When("matching an unavailable item line", func() {
			BeforeEach(func() {
				line = "Great Value Whole Milk Unavailable Qty 1 $3.99"
			})

			It("should match", func() {
				Expect(ok).To(BeTrue())
			})

			It("should capture the multi-word description", func() {
				Expect(item.Name).To(Equal("Great Value Whole Milk"))
			})
		})

		When("the line has no dollar amount", func() {
			BeforeEach(func() {
				line = "Bananas Shopped Qty 2"
			})

			It("should not match", func() {
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("weight-adjusted quantity rule", func() {
		BeforeEach(func() {
			rule = strictRules[2]
		})

		When("matching a weight-adjusted item line", func() {
			BeforeEach(func() {
				line = "Fresh Chicken Breast Weight-adjusted Qty 1 $8.63"
			})

			It("should match", func() {
				Expect(ok).To(BeTrue())
			})

			It("should capture the description", func() {
				Expect(item.Name).To(Equal("Fresh Chicken Breast"))
			})

			It("should capture the price", func() {
				Expect(item.Price).To(Equal(8.63))
			})
		})
	})

	Describe("trailing-price rule", func() {
		BeforeEach(func() {
			rule = looseRule
		})

		When("matching a generic priced line", func() {
			BeforeEach(func() {
				line = "Candy Bar $2.00"
			})

			It("should match", func() {
				Expect(ok).To(BeTrue())
			})

			It("should capture the trimmed description", func() {
				Expect(item.Name).To(Equal("Candy Bar"))
			})

			It("should capture the price", func() {
				Expect(item.Price).To(Equal(2.00))
			})
		})

		When("the amount segment is not a number", func() {
			BeforeEach(func() {
				line = "Candy Bar $1.2.3"
			})

			It("should not match", func() {
				Expect(ok).To(BeFalse())
			})
		})

		When("the line has no price", func() {
			BeforeEach(func() {
				line = "Thanks for shopping"
			})

			It("should not match", func() {
				Expect(ok).To(BeFalse())
			})
		})
	})
})

var _ = Describe("isNonItemName", func() {
	It("should reject subtotal captures", func() {
		Expect(isNonItemName("Subtotal")).To(BeTrue())
	})

	It("should reject total captures", func() {
		Expect(isNonItemName("Order Total")).To(BeTrue())
	})

	It("should reject delivery captures", func() {
		Expect(isNonItemName("Express delivery")).To(BeTrue())
	})

	It("should reject tip captures", func() {
		Expect(isNonItemName("Driver tip")).To(BeTrue())
	})

	It("should keep ordinary product names", func() {
		Expect(isNonItemName("Candy Bar")).To(BeFalse())
	})
})
