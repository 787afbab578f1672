package catalog

import (
	"fmt"
	"strings"

	"github.com/clinassist/decision-worker/internal/tree"
)

// Purpose enumerates the supported loan purposes.
type Purpose string

const (
	PurposeHome      Purpose = "home"
	PurposeCar       Purpose = "car"
	PurposeEducation Purpose = "education"
)

// loanTree is the underwriting ladder: credit score, then income, then
// requested amount.
var loanTree = tree.New(tree.Ask("What is your credit score?", "credit_score",
	tree.On(tree.Op("<", 640), tree.Outcome("Declined - Credit score too low")),
	tree.On(tree.Op(">=", 640), tree.Ask("What is your annual income?", "income",
		tree.On(tree.Op("<", 50000), tree.Ask("What is the requested loan amount?", "requested_amount",
			tree.On(tree.Op("<=", 10000), tree.Outcome("Approved - Small loan with moderate income")),
			tree.On(tree.Op(">", 10000), tree.Outcome("Declined - Loan amount too high for income")),
		)),
		tree.On(tree.Op(">=", 50000), tree.Outcome("Approved - Strong income and credit score")),
	)),
))

// purposeTree branches on the enumerated loan purpose before score and
// country membership checks.
var purposeTree = tree.New(tree.Ask("What is the loan purpose?", "purpose",
	tree.On(tree.Is(PurposeHome), tree.Outcome("Declined - Mortgages not offered")),
	tree.On(tree.Is(PurposeCar), tree.Ask("What is your credit score?", "credit_score",
		tree.On(tree.Op("<", 600), tree.Outcome("Declined - Credit too low for auto loan")),
		tree.On(tree.Op(">=", 600), tree.Outcome("Approved - Auto loan")),
	)),
	tree.On(tree.Is(PurposeEducation), tree.Ask("Which country is your university located in?", "country",
		tree.On(tree.Op("in", []string{"US", "Canada"}), tree.Outcome("Approved - Domestic study")),
		tree.On(tree.Op("not in", []string{"US", "Canada"}), tree.Outcome("Declined - Foreign study")),
	)),
))

func loanEntries() []*Entry {
	return []*Entry{
		{
			Name:        "loan_decision",
			Description: "Determines loan eligibility and outcome by checking against a set of financial rules.",
			Inputs: []Input{
				{Name: "credit_score", Type: "integer", Description: "The applicant's credit score, e.g., 720", Required: true},
				{Name: "income", Type: "integer", Description: "The applicant's total annual income, e.g., 65000", Required: true},
				{Name: "requested_amount", Type: "integer", Description: "The total amount of the loan requested by the applicant", Required: true},
			},
			Tree: loanTree,
		},
		{
			Name:        "loan_purpose_decision",
			Description: "Determines loan eligibility and outcome with purpose-specific rules.",
			Inputs: []Input{
				{Name: "purpose", Type: "string", Description: "The purpose of the loan: home, car or education", Required: true},
				{Name: "credit_score", Type: "integer", Description: "The applicant's credit score, e.g., 720", Required: true},
				{Name: "country", Type: "string", Description: "The country where the university is located, e.g., 'US'", Required: true},
			},
			Tree:   purposeTree,
			Derive: derivePurpose,
		},
	}
}

// derivePurpose narrows the raw purpose string to the Purpose type so the
// enumerated branch keys compare equal.
func derivePurpose(inputs tree.Inputs) (tree.Inputs, error) {
	raw, ok := inputs["purpose"].(string)
	if !ok {
		return nil, fmt.Errorf("purpose must be a string, got %T", inputs["purpose"])
	}

	purpose := Purpose(strings.ToLower(raw))
	switch purpose {
	case PurposeHome, PurposeCar, PurposeEducation:
	default:
		return nil, fmt.Errorf("unknown loan purpose %q", raw)
	}

	out := inputs.Clone()
	out["purpose"] = purpose
	return out, nil
}
