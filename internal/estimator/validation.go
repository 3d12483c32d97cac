package estimator

import "fmt"

// Validate rejects unknown enum values and out-of-range condition levels.
// An empty joint is allowed.
func (in Input) Validate() error {
	switch in.InstrumentType {
	case InstrumentAcoustic, InstrumentElectric, InstrumentBass, InstrumentUkulele,
		InstrumentArchtop, InstrumentVintage, InstrumentOther:
	default:
		return fmt.Errorf("%w: unknown instrument type %q", ErrInvalidInput, in.InstrumentType)
	}
	switch in.Specs.Paint {
	case PaintLacquer, PaintPoly, PaintOil:
	default:
		return fmt.Errorf("%w: unknown paint %q", ErrInvalidInput, in.Specs.Paint)
	}
	switch in.Specs.Binding {
	case BindingNone, BindingNormal, BindingGibson:
	default:
		return fmt.Errorf("%w: unknown binding %q", ErrInvalidInput, in.Specs.Binding)
	}
	switch in.Specs.Joint {
	case "", JointBoltOn, JointSetNeck, JointThroughNeck:
	default:
		return fmt.Errorf("%w: unknown joint %q", ErrInvalidInput, in.Specs.Joint)
	}
	switch in.Specs.JointWork {
	case JointWorkNone, JointWorkOkita, JointWorkResetAngle:
	default:
		return fmt.Errorf("%w: unknown joint work %q", ErrInvalidInput, in.Specs.JointWork)
	}
	if in.Condition.RustLevel < 1 || in.Condition.RustLevel > 5 {
		return fmt.Errorf("%w: rust level %d out of range 1-5", ErrInvalidInput, in.Condition.RustLevel)
	}
	if in.Condition.RepairTraceLevel < 1 || in.Condition.RepairTraceLevel > 3 {
		return fmt.Errorf("%w: repair trace level %d out of range 1-3", ErrInvalidInput, in.Condition.RepairTraceLevel)
	}
	return nil
}
