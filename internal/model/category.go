package model

type Category string

const (
	CategoryRoadRage        Category = "road_rage"
	CategoryPublicFreakout  Category = "public_freakout"
	CategoryCustomerService Category = "customer_service"
	CategoryNeighborDrama   Category = "neighbor_drama"
	CategoryFamilyDrama     Category = "family_drama"
	CategoryWorkplaceChaos  Category = "workplace_chaos"
	CategoryRandomMeltdown  Category = "random_meltdown"
	CategoryOther           Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryRoadRage,
	CategoryPublicFreakout,
	CategoryCustomerService,
	CategoryNeighborDrama,
	CategoryFamilyDrama,
	CategoryWorkplaceChaos,
	CategoryRandomMeltdown,
	CategoryOther,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryRoadRage, CategoryPublicFreakout, CategoryCustomerService, CategoryNeighborDrama,
		CategoryFamilyDrama, CategoryWorkplaceChaos, CategoryRandomMeltdown, CategoryOther:
		return true
	default:
		return false
	}
}

func (c Category) Label() string {
	switch c {
	case CategoryRoadRage:
		return "Road Rage"
	case CategoryPublicFreakout:
		return "Public Freakout"
	case CategoryCustomerService:
		return "Customer Service"
	case CategoryNeighborDrama:
		return "Neighbor Drama"
	case CategoryFamilyDrama:
		return "Family Drama"
	case CategoryWorkplaceChaos:
		return "Workplace Chaos"
	case CategoryRandomMeltdown:
		return "Random Meltdown"
	default:
		return "Other"
	}
}

func (c Category) Description() string {
	switch c {
	case CategoryRoadRage:
		return "Traffic incidents and road rage moments"
	case CategoryPublicFreakout:
		return "Public meltdowns and outbursts"
	case CategoryCustomerService:
		return "Retail and service industry chaos"
	case CategoryNeighborDrama:
		return "Neighborhood disputes and conflicts"
	case CategoryFamilyDrama:
		return "Family arguments and disputes"
	case CategoryWorkplaceChaos:
		return "Office and workplace incidents"
	case CategoryRandomMeltdown:
		return "Unexpected outbursts and breakdowns"
	default:
		return "Other types of trippin' moments"
	}
}
