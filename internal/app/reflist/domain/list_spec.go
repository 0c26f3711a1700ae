package domain

import "strings"

// DefaultCaseSensitiveNames is the name matching rule of every shipped list:
// "Lavender" and "lavender" are different names.
const DefaultCaseSensitiveNames = true

// ListKey identifies one reference list in URLs, metrics and events.
type ListKey string

const (
	ListOils         ListKey = "oils"
	ListDeviceModels ListKey = "device-models"
	ListIndustries   ListKey = "industries"
)

// ListSpec binds the reconciliation engine to one concrete list: the table it
// addresses and the column that carries the unique display name.
type ListSpec struct {
	Key        ListKey
	Title      string
	Table      string
	NameColumn string

	// CaseInsensitiveNames switches name lookups (uniqueness and the name
	// fallback of the order pass) to case-folded comparison.
	CaseInsensitiveNames bool
}

// NamesEqual compares two already-normalized names with the list's matching rule.
func (s ListSpec) NamesEqual(a, b string) bool {
	if s.CaseInsensitiveNames {
		return strings.EqualFold(a, b)
	}
	return a == b
}

var (
	OilList = ListSpec{
		Key:                  ListOils,
		Title:                "Essential oils",
		Table:                "essential_oils",
		NameColumn:           "oil_name",
		CaseInsensitiveNames: !DefaultCaseSensitiveNames,
	}
	DeviceModelList = ListSpec{
		Key:                  ListDeviceModels,
		Title:                "Device models",
		Table:                "device_models",
		NameColumn:           "model_name",
		CaseInsensitiveNames: !DefaultCaseSensitiveNames,
	}
	IndustryList = ListSpec{
		Key:                  ListIndustries,
		Title:                "Industries",
		Table:                "industries",
		NameColumn:           "industry_name",
		CaseInsensitiveNames: !DefaultCaseSensitiveNames,
	}
)

// Lists returns the specs of all reference lists in a stable order.
func Lists() []ListSpec {
	return []ListSpec{OilList, DeviceModelList, IndustryList}
}

// LookupList finds a list spec by its key.
func LookupList(key string) (ListSpec, error) {
	for _, s := range Lists() {
		if string(s.Key) == key {
			return s, nil
		}
	}
	return ListSpec{}, ErrUnknownList
}
