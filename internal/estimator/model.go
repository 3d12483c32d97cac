package estimator

// InstrumentType selects the instrument multiplier.
type InstrumentType string

const (
	InstrumentAcoustic InstrumentType = "acoustic"
	InstrumentElectric InstrumentType = "electric"
	InstrumentBass     InstrumentType = "bass"
	InstrumentUkulele  InstrumentType = "ukulele"
	InstrumentArchtop  InstrumentType = "archtop"
	InstrumentVintage  InstrumentType = "vintage"
	InstrumentOther    InstrumentType = "other"
)

type PaintType string

const (
	PaintLacquer PaintType = "lacquer"
	PaintPoly    PaintType = "poly"
	PaintOil     PaintType = "oil"
)

type BindingType string

const (
	BindingNone   BindingType = "none"
	BindingNormal BindingType = "normal"
	BindingGibson BindingType = "gibson"
)

// JointType is informational; no rule prices it.
type JointType string

const (
	JointBoltOn      JointType = "bolt-on"
	JointSetNeck     JointType = "set-neck"
	JointThroughNeck JointType = "through-neck"
)

// JointWorkType is the neck angle work on acoustic joints.
type JointWorkType string

const (
	JointWorkNone       JointWorkType = "none"
	JointWorkOkita      JointWorkType = "okita"
	JointWorkResetAngle JointWorkType = "reset-angle"
)

// Specs describes construction details that trigger surcharges.
type Specs struct {
	Paint     PaintType     `json:"paint"`
	Binding   BindingType   `json:"binding"`
	Joint     JointType     `json:"joint,omitempty"`
	JointWork JointWorkType `json:"jointWork"`
}

// Condition describes the instrument's state.
// RustLevel: 1 normal, 3 heat treatment, 4 screw rescue, 5 screw replacement.
// RepairTraceLevel: 1 none, 2 professional, 3 amateur.
type Condition struct {
	RustLevel         int  `json:"rustLevel"`
	RepairTraceLevel  int  `json:"repairTraceLevel"`
	IsDirty           bool `json:"isDirty"`
	RescueScrewCount  int  `json:"rescueScrewCount,omitempty"`
	ReplaceScrewCount int  `json:"replaceScrewCount,omitempty"`
}

// Input is everything Calculate needs.
type Input struct {
	InstrumentType      InstrumentType `json:"instrumentType"`
	Specs               Specs          `json:"specs"`
	Condition           Condition      `json:"condition"`
	SelectedWorkItemIDs []string       `json:"selectedWorkItemIds"`
}

// Line is one breakdown entry. Amount is in yen.
type Line struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// Result is an itemized estimate.
type Result struct {
	TotalPrice int64    `json:"totalPrice"`
	Breakdown  []Line   `json:"breakdown"`
	Warnings   []string `json:"warnings"`
}
