// Package estimator prices a repair from a structured description of the
// instrument, its condition and the selected catalog work.
package estimator

import "fmt"

// Fixed amounts in yen.
const (
	nutWithRefretPrice   = 8000
	polySurcharge        = 10000
	gibsonBindingCharge  = 20000
	okitaCharge          = 40000
	resetAngleCharge     = 80000
	heatTreatmentCharge  = 1000
	screwRescueUnit      = 2000
	screwReplaceUnit     = 3000
	proTraceCharge       = 10000
	specialCleaningFee   = 5000
	stringsCost          = 1500
	minimumCharge        = 3000
	roundingUnit         = 100
	multiplierPercentOne = 100
)

// AmateurRepairWarning accompanies the doubled labor for amateur repair marks.
const AmateurRepairWarning = "素人修理痕があるため、工賃が通常の2倍に設定されています。状態によってはお断りする可能性があります。"

type calculation struct {
	subtotal  int64
	breakdown []Line
	warnings  []string
}

func (c *calculation) add(label string, amount int64, note string) {
	c.subtotal += amount
	c.breakdown = append(c.breakdown, Line{Label: label, Amount: amount, Note: note})
}

func (c *calculation) info(label, note string) {
	c.breakdown = append(c.breakdown, Line{Label: label, Amount: 0, Note: note})
}

// Calculate validates the input and returns the itemized estimate. Unknown
// work item ids are ignored. Breakdown lines follow a fixed order: work
// items, paint, binding, joint work, rust, repair marks, cleaning,
// instrument multiplier, strings, minimum charge.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	selected := make(map[string]bool, len(in.SelectedWorkItemIDs))
	for _, id := range in.SelectedWorkItemIDs {
		selected[id] = true
	}

	c := &calculation{}
	structural := addWorkItems(c, selected)
	addPaint(c, in.Specs, structural)
	addBinding(c, in.Specs, selected)
	addJointWork(c, in.Specs.JointWork)
	addCondition(c, in.Condition)

	total := applyMultiplier(c, in.InstrumentType)

	c.breakdown = append(c.breakdown, Line{Label: "弦代", Amount: stringsCost})
	total += stringsCost

	if total < minimumCharge {
		c.breakdown = append(c.breakdown, Line{
			Label:  "最低工賃補正",
			Amount: minimumCharge - total,
			Note:   "最低3,000円",
		})
		total = minimumCharge
	}

	warnings := c.warnings
	if warnings == nil {
		warnings = []string{}
	}
	return Result{
		TotalPrice: roundUpToHundred(total),
		Breakdown:  c.breakdown,
		Warnings:   warnings,
	}, nil
}

// addWorkItems prices the selected catalog items in catalog order and
// reports whether any of them touches the neck or body.
func addWorkItems(c *calculation, selected map[string]bool) bool {
	structural := false
	for _, item := range catalog {
		if !selected[item.ID] {
			continue
		}
		price, note := item.BasePrice, ""
		if item.ID == WorkNutExchange && selected[WorkRefret] {
			price, note = nutWithRefretPrice, "セット割引適用 (フレット交換同時)"
		}
		if item.Category == CategoryNeck || item.Category == CategoryBody {
			structural = true
		}
		c.add(item.Name, price, note)
	}
	return structural
}

func addPaint(c *calculation, specs Specs, structural bool) {
	if specs.Paint != PaintPoly {
		return
	}
	const label = "塗装割増 (ポリウレタン)"
	if structural || specs.JointWork != JointWorkNone {
		c.add(label, polySurcharge, "硬質塗装加工費")
		return
	}
	c.info(label, "※木工・塗装関連の作業時に加算")
}

func addBinding(c *calculation, specs Specs, selected map[string]bool) {
	if specs.Binding != BindingGibson {
		return
	}
	const label = "バインディング (セル山残し)"
	if selected[WorkRefret] || selected[WorkFretDress] || selected[WorkNutExchange] {
		c.add(label, gibsonBindingCharge, "高難易度加工")
		return
	}
	c.info(label, "※フレット・ナット関連作業時に加算")
}

func addJointWork(c *calculation, work JointWorkType) {
	switch work {
	case JointWorkOkita:
		c.add("簡易角度調整 (沖田式)", okitaCharge, "")
	case JointWorkResetAngle:
		c.add("ネックリセット (角度調整)", resetAngleCharge, "")
	}
}

func addCondition(c *calculation, cond Condition) {
	switch cond.RustLevel {
	case 3:
		c.add("固着対応 (加熱処理)", heatTreatmentCharge, "ヒートガン処理等")
	case 4:
		n := screwCount(cond.RescueScrewCount)
		c.add("ネジ救出オペ", screwRescueUnit*n, fmt.Sprintf("%d本", n))
	case 5:
		n := screwCount(cond.ReplaceScrewCount)
		c.add("ネジ全交換", screwReplaceUnit*n, fmt.Sprintf("%d本", n))
	}

	switch cond.RepairTraceLevel {
	case 2:
		c.add("修正工賃 (プロ施工痕)", proTraceCharge, "")
	case 3:
		c.add("修正工賃 (素人/雑)", c.subtotal, "工数2倍適用")
		c.warnings = append(c.warnings, AmateurRepairWarning)
	}

	if cond.IsDirty {
		c.add("特別クリーニング", specialCleaningFee, "ヤニ・汚れ除去")
	}
}

func screwCount(n int) int64 {
	if n <= 0 {
		return 1
	}
	return int64(n)
}

// multiplierPercent returns the instrument multiplier as a percentage.
func multiplierPercent(t InstrumentType) int64 {
	switch t {
	case InstrumentVintage, InstrumentBass, InstrumentUkulele:
		return 120
	case InstrumentArchtop:
		return 150
	default:
		return multiplierPercentOne
	}
}

// applyMultiplier scales the labor subtotal and returns the adjusted amount.
// Fractional yen are rounded up.
func applyMultiplier(c *calculation, t InstrumentType) int64 {
	pct := multiplierPercent(t)
	if pct == multiplierPercentOne {
		return c.subtotal
	}
	adjusted := ceilDiv(c.subtotal*pct, multiplierPercentOne)
	c.breakdown = append(c.breakdown, Line{
		Label:  fmt.Sprintf("楽器特性補正 (x%d.%d)", pct/100, pct%100/10),
		Amount: adjusted - c.subtotal,
		Note:   fmt.Sprintf("%s 係数適用", t),
	})
	return adjusted
}

func roundUpToHundred(v int64) int64 {
	return ceilDiv(v, roundingUnit) * roundingUnit
}

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return a / b
	}
	return (a + b - 1) / b
}
