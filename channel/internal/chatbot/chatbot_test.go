package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswer(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "Greeting", message: "Hello there!", expected: IntentGreeting},
		{name: "GreetingMixedCase", message: "HEY", expected: IntentGreeting},
		{name: "OrderStatus", message: "where is my order?", expected: IntentOrderStatus},
		{name: "Shipping", message: "do you deliver to Chittagong?", expected: IntentShipping},
		{name: "CustomDesign", message: "can I get a custom engraved mug", expected: IntentCustomDesign},
		{name: "CustomDesignAmericanSpelling", message: "personalize a plate for me", expected: IntentCustomDesign},
		{name: "Pricing", message: "how much is the walnut tray", expected: IntentPricing},
		{name: "Returns", message: "my item arrived damaged", expected: IntentReturns},
		{name: "Fallback", message: "do you sell gift cards", expected: IntentFallback},
		{name: "FallbackEmpty", message: "   ", expected: IntentFallback},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			intent, reply := Answer(test.message)
			assert.Equal(t, test.expected, intent)
			assert.NotEmpty(t, reply)
		})
	}
}

func TestAnswerPriorityBeatsGreeting(t *testing.T) {
	intent, _ := Answer("hello, do you deliver to Sylhet?")
	assert.Equal(t, IntentShipping, intent)
}

func TestAnswerEarlierRuleWinsTies(t *testing.T) {
	// Matches both the shipping and pricing rules at the same
	// priority; the shipping rule is declared first.
	intent, _ := Answer("what does shipping cost?")
	assert.Equal(t, IntentShipping, intent)
}
