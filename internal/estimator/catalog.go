package estimator

// WorkCategory groups catalog items by the part of the instrument they touch.
type WorkCategory string

const (
	CategoryNeck     WorkCategory = "neck"
	CategoryBody     WorkCategory = "body"
	CategoryElectric WorkCategory = "electric"
	CategoryOther    WorkCategory = "other"
)

// Catalog work item ids.
const (
	WorkAdjustRod      = "adjust_rod"
	WorkNutExchange    = "nut_exchange"
	WorkSaddleAcoustic = "saddle_exchange_acoustic"
	WorkRefret         = "refret"
	WorkFretDress      = "fret_dress"
	WorkJackExchange   = "jack_exchange"
	WorkNeckReset      = "neck_reset"
)

// CatalogItem is a selectable piece of work with its base price in yen.
type CatalogItem struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	BasePrice int64        `json:"basePrice"`
	Category  WorkCategory `json:"category"`
}

var catalog = []CatalogItem{
	{ID: WorkAdjustRod, Name: "トラスロッド調整", BasePrice: 3000, Category: CategoryNeck},
	{ID: WorkNutExchange, Name: "ナット交換", BasePrice: 10000, Category: CategoryNeck},
	{ID: WorkSaddleAcoustic, Name: "サドル交換 (アコギ)", BasePrice: 5000, Category: CategoryBody},
	{ID: WorkRefret, Name: "フレット交換", BasePrice: 40000, Category: CategoryNeck},
	{ID: WorkFretDress, Name: "フレットすり合わせ", BasePrice: 8000, Category: CategoryNeck},
	{ID: WorkJackExchange, Name: "ジャック交換", BasePrice: 3000, Category: CategoryElectric},
	{ID: WorkNeckReset, Name: "ネックリセット", BasePrice: 0, Category: CategoryNeck},
}

// Catalog returns a copy of the work item catalog in display order.
func Catalog() []CatalogItem {
	out := make([]CatalogItem, len(catalog))
	copy(out, catalog)
	return out
}
