// Package pricing is the one price table for paid services.  Amounts are in
// minor units (cents).
package pricing

import (
	"fmt"
	"sort"
	"strings"
)

// Tier is one row of the price table.
type Tier struct {
	ServiceType string `json:"serviceType"`
	Name        string `json:"name"`
	BasePrice   int64  `json:"basePrice"`
	RushFee     int64  `json:"rushFee"`
}

var table = map[string]Tier{
	"nexus_letter":           {ServiceType: "nexus_letter", Name: "Nexus Letter", BasePrice: 150000, RushFee: 50000},
	"dbq":                    {ServiceType: "dbq", Name: "DBQ Review", BasePrice: 75000, RushFee: 25000},
	"aid_attendance":         {ServiceType: "aid_attendance", Name: "Aid & Attendance Evaluation", BasePrice: 100000, RushFee: 35000},
	"claim_readiness_review": {ServiceType: "claim_readiness_review", Name: "Claim Readiness Review", BasePrice: 22500, RushFee: 7500},
	"record_review":          {ServiceType: "record_review", Name: "Medical Record Review", BasePrice: 50000, RushFee: 20000},
}

// UnknownServiceError is returned for a service type outside the table.
type UnknownServiceError struct{ ServiceType string }

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service type %q", e.ServiceType)
}

// Lookup returns the table row for serviceType.
func Lookup(serviceType string) (Tier, bool) {
	t, ok := table[strings.ToLower(strings.TrimSpace(serviceType))]
	return t, ok
}

// Compute returns base price plus the rush fee when isRush is set.
func Compute(serviceType string, isRush bool) (int64, error) {
	t, ok := Lookup(serviceType)
	if !ok {
		return 0, &UnknownServiceError{ServiceType: serviceType}
	}
	if isRush {
		return t.BasePrice + t.RushFee, nil
	}
	return t.BasePrice, nil
}

// DisplayName is the checkout line-item name; unknown types fall back to the
// raw service type.
func DisplayName(serviceType string) string {
	if t, ok := Lookup(serviceType); ok {
		return t.Name
	}
	return serviceType
}

// Tiers lists every row ordered by service type.
func Tiers() []Tier {
	out := make([]Tier, 0, len(table))
	for _, t := range table {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceType < out[j].ServiceType })
	return out
}
