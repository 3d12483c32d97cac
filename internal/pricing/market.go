package pricing

import (
	"strings"

	"github.com/rpggio/repairdesk/internal/search"
)

// MenuItem is one entry of the market-rate menu. Prices are in yen.
type MenuItem struct {
	Name        string   `json:"name"`
	PriceMin    int64    `json:"priceMin"`
	PriceMax    int64    `json:"priceMax"`
	Description string   `json:"desc"`
	Keywords    []string `json:"keywords"`
}

// MenuCategory groups menu items.
type MenuCategory struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

var marketMenu = []MenuCategory{
	{
		Category: "ナット交換 (Nut)",
		Items: []MenuItem{
			{Name: "牛骨 (Bone)", PriceMin: 8800, PriceMax: 13000, Description: "最も一般的。バランスの良い音色。", Keywords: []string{"ナット", "nut", "牛骨", "開放弦", "ビビリ", "チューニング"}},
			{Name: "人工象牙 (TUSQ)", PriceMin: 11000, PriceMax: 11000, Description: "高音域の倍音が豊か。", Keywords: []string{"tusq", "タスク", "ナット"}},
			{Name: "ブラス (真鍮)", PriceMin: 16500, PriceMax: 18700, Description: "サステインが長く、煌びやか。", Keywords: []string{"ブラス", "真鍮", "メタル", "サステイン"}},
			{Name: "ロックナット加工", PriceMin: 16500, PriceMax: 22000, Description: "フロイドローズ等の取り付け。", Keywords: []string{"ロックナット", "フロイド", "アーミング"}},
		},
	},
	{
		Category: "フレット交換 (Refret)",
		Items: []MenuItem{
			{Name: "スタンダード (Rosewood/Ebony指板)", PriceMin: 38500, PriceMax: 58000, Description: "一般的な指板。指板調整含む。", Keywords: []string{"フレット", "fret", "打ち替え", "減り", "凹み"}},
			{Name: "メイプル指板 (塗装あり)", PriceMin: 71500, PriceMax: 91000, Description: "指板面の再塗装が必要なため高額。", Keywords: []string{"メイプル", "maple", "塗装"}},
			{Name: "バインディング付き", PriceMin: 43500, PriceMax: 69000, Description: "セルバインディングの処理工賃含む。", Keywords: []string{"バインディング", "セル"}},
			{Name: "ステンレスフレット変更", PriceMin: 48500, PriceMax: 69000, Description: "硬度が高く減りにくい。加工難易度高。", Keywords: []string{"ステンレス", "錆びない"}},
		},
	},
	{
		Category: "ネック折れ (Neck Break)",
		Items: []MenuItem{
			{Name: "接着のみ (タッチアップ)", PriceMin: 22000, PriceMax: 33000, Description: "強度は保証外。見た目も傷が残る可能性あり。", Keywords: []string{"折れ", "ひび", "割れ", "クラック", "倒した"}},
			{Name: "補強なし (オーバーコート)", PriceMin: 44000, PriceMax: 49500, Description: "塗装で傷を目立たなくする。", Keywords: []string{"折れ", "補強なし"}},
			{Name: "補強あり (完全修復)", PriceMin: 66000, PriceMax: 100000, Description: "ボリュート加工などで強度を高める。", Keywords: []string{"折れ", "補強", "ヘッド"}},
		},
	},
	{
		Category: "全体調整 (Setup)",
		Items: []MenuItem{
			{Name: "基本セットアップ", PriceMin: 5000, PriceMax: 10000, Description: "ネック調整、弦高、オクターブ、クリーニング。", Keywords: []string{"調整", "セットアップ", "弦高", "弾きにくい", "高い", "低い", "オクターブ"}},
			{Name: "すり合わせ (Fret Leveling)", PriceMin: 8000, PriceMax: 15000, Description: "特定のビビリを除去。全体的なバランス調整。", Keywords: []string{"すり合わせ", "ビビリ", "詰まり", "音詰まり", "特定のポジション"}},
		},
	},
	{
		Category: "電装系 (Electronics)",
		Items: []MenuItem{
			{Name: "ジャック交換", PriceMin: 2000, PriceMax: 4000, Description: "ガリや接触不良の修理。", Keywords: []string{"ジャック", "ガリ", "ノイズ", "接触不良", "音が出ない", "途切れる"}},
			{Name: "PU交換 (1個)", PriceMin: 3000, PriceMax: 6000, Description: "配線工賃のみ。パーツ代別。", Keywords: []string{"ピックアップ", "pu", "マイク", "交換"}},
			{Name: "全配線引き直し", PriceMin: 8000, PriceMax: 15000, Description: "ポット、スイッチ等の交換含む場合あり。", Keywords: []string{"配線", "回路", "ポッド", "スイッチ", "セレクター", "トーン", "ボリューム"}},
		},
	},
	{
		Category: "ブリッジ周辺 (Bridge)",
		Items: []MenuItem{
			{Name: "ブリッジ剥がれ接着", PriceMin: 15000, PriceMax: 30000, Description: "アコースティックギターの定番修理。", Keywords: []string{"ブリッジ", "浮き", "剥がれ", "隙間", "紙が入る"}},
			{Name: "サドル作成 (牛骨)", PriceMin: 5000, PriceMax: 8000, Description: "弦高調整に合わせて新規作成。", Keywords: []string{"サドル", "弦高"}},
		},
	},
}

// MarketRates returns the menu entries relevant to query. A blank query
// returns the whole menu. Categories without a matching item are omitted.
func MarketRates(query string) []MenuCategory {
	tokens := search.Tokenize(query)
	out := make([]MenuCategory, 0, len(marketMenu))
	for _, cat := range marketMenu {
		var items []MenuItem
		for _, item := range cat.Items {
			if len(tokens) == 0 || matchesAny(item.Keywords, tokens) {
				items = append(items, cloneItem(item))
			}
		}
		if len(items) > 0 {
			out = append(out, MenuCategory{Category: cat.Category, Items: items})
		}
	}
	return out
}

// matchesAny reports whether a token and a keyword contain one another,
// ignoring case.
func matchesAny(keywords, tokens []string) bool {
	for _, token := range tokens {
		t := strings.ToLower(token)
		for _, kw := range keywords {
			k := strings.ToLower(kw)
			if strings.Contains(t, k) || strings.Contains(k, t) {
				return true
			}
		}
	}
	return false
}

func cloneItem(item MenuItem) MenuItem {
	item.Keywords = append([]string(nil), item.Keywords...)
	return item
}
