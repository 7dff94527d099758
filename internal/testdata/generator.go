package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/portfolio"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Loans *repository.LoanRepo
}

var (
	firstNames = []string{"Asha", "Ravi", "Meena", "Suresh", "Kavita", "Arjun", "Lakshmi", "Farhan", "Deepa", "Vikram"}
	lastNames  = []string{"Sharma", "Iyer", "Patel", "Reddy", "Khan", "Nair", "Gupta", "Das", "Menon", "Singh"}
	cities     = []string{"Mumbai", "Pune", "Chennai", "Hyderabad", "Kolkata", "Jaipur", "Lucknow", "Kochi"}
	loanTypes  = []string{"Home Loan", "Car Loan", "Personal Loan", "Business Loan", "Gold Loan"}
	regions    = []string{"North", "South", "East", "West", "Central"}
	statuses   = []string{"Active", "Overdue", "Notice Sent", "Closed"}
)

// Loans returns n deterministic sample loans for seed. IDs are LN-00001
// upwards. Every seventh loan carries a non-numeric DPD.
func Loans(n int, seed int64) []portfolio.RawLoan {
	r := rand.New(rand.NewSource(seed))
	out := make([]portfolio.RawLoan, 0, n)
	for i := 1; i <= n; i++ {
		dpd := strconv.Itoa(r.Intn(240))
		if i%7 == 0 {
			dpd = "N/A"
		}
		out = append(out, portfolio.RawLoan{
			ID:                fmt.Sprintf("LN-%05d", i),
			LoanType:          loanTypes[r.Intn(len(loanTypes))],
			Borrower:          name(r),
			BorrowerAddress:   address(r),
			CoBorrowerName:    name(r),
			CoBorrowerAddress: address(r),
			CurrentDPD:        dpd,
			SanctionAmount:    strconv.Itoa((r.Intn(5000) + 50) * 1000),
			Region:            regions[r.Intn(len(regions))],
			Status:            statuses[r.Intn(len(statuses))],
		})
	}
	return out
}

// CoercedLoans is Loans converted to view-model loans.
func CoercedLoans(n int, seed int64) []portfolio.Loan {
	raw := Loans(n, seed)
	out := make([]portfolio.Loan, 0, len(raw))
	for _, rl := range raw {
		out = append(out, rl.Loan())
	}
	return out
}

// CSV renders n sample loans as upload text with a header line.
func CSV(n int, seed int64) string {
	var b strings.Builder
	b.WriteString("loan_no,borrower,region,sanction_amount,dpd\n")
	for _, l := range Loans(n, seed) {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s\n", l.ID, l.Borrower, l.Region, l.SanctionAmount, l.CurrentDPD)
	}
	return b.String()
}

// Seed inserts n sample loans.
func Seed(ctx context.Context, repos Repos, n int, seed int64) error {
	for _, l := range Loans(n, seed) {
		if err := repos.Loans.Upsert(ctx, repository.LoanFromRaw(l)); err != nil {
			return err
		}
	}
	return nil
}

func name(r *rand.Rand) string {
	return firstNames[r.Intn(len(firstNames))] + " " + lastNames[r.Intn(len(lastNames))]
}

func address(r *rand.Rand) string {
	return fmt.Sprintf("%d, Sector %d, %s", r.Intn(900)+10, r.Intn(60)+1, cities[r.Intn(len(cities))])
}
