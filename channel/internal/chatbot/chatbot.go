// Package chatbot answers common storefront questions with canned
// replies matched by keyword patterns.
package chatbot

import (
	"regexp"
	"strings"
)

const (
	IntentGreeting     = "greeting"
	IntentOrderStatus  = "order_status"
	IntentShipping     = "shipping"
	IntentCustomDesign = "custom_design"
	IntentPricing      = "pricing"
	IntentReturns      = "returns"
	IntentFallback     = "fallback"
)

type rule struct {
	intent   string
	priority int
	pattern  *regexp.Regexp
	reply    string
}

// The highest-priority matching rule wins; between matches of equal
// priority the rule declared first wins. Greetings sit below the
// topical rules so a question that opens with "hi" still gets a
// topical answer.
var rules = []rule{
	{
		intent:   IntentGreeting,
		priority: 0,
		pattern:  regexp.MustCompile(`\b(hi|hello|hey|assalamu|salam)\b`),
		reply:    "Hello! Welcome to Shafe's Handcraft. How can I help you today?",
	},
	{
		intent:   IntentOrderStatus,
		priority: 1,
		pattern:  regexp.MustCompile(`\b(order|track|delivery status|where is)\b`),
		reply:    "You can follow every order from the My Orders page. Paid orders usually ship within 3 working days.",
	},
	{
		intent:   IntentShipping,
		priority: 1,
		pattern:  regexp.MustCompile(`\b(ship|shipping|deliver|courier)\b`),
		reply:    "We deliver nationwide. Inside Dhaka takes 2-3 days, outside Dhaka 4-6 days.",
	},
	{
		intent:   IntentCustomDesign,
		priority: 1,
		pattern:  regexp.MustCompile(`\b(custom|design|personali[sz]e|engrav)\b`),
		reply:    "Use the design studio to build your own piece. Pick a material and size, upload your artwork and add it straight to your cart.",
	},
	{
		intent:   IntentPricing,
		priority: 1,
		pattern:  regexp.MustCompile(`\b(price|cost|how much|taka|bdt)\b`),
		reply:    "Prices are listed on each product page in BDT. Custom pieces are priced by material and size in the design studio.",
	},
	{
		intent:   IntentReturns,
		priority: 1,
		pattern:  regexp.MustCompile(`\b(return|refund|exchange|damaged)\b`),
		reply:    "Damaged items can be returned within 7 days of delivery. Custom designed pieces are exchange only.",
	},
}

const fallbackReply = "I'm not sure about that one. Post your question in the community channel and a maker will get back to you."

// Answer matches the utterance against the rule set and returns the
// intent with its canned reply.
func Answer(message string) (intent, reply string) {
	normalized := strings.ToLower(strings.TrimSpace(message))
	best := -1
	for i, r := range rules {
		if !r.pattern.MatchString(normalized) {
			continue
		}
		if best == -1 || r.priority > rules[best].priority {
			best = i
		}
	}
	if best == -1 {
		return IntentFallback, fallbackReply
	}
	return rules[best].intent, rules[best].reply
}
