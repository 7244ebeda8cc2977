package preset

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rcgears/dogbox/gearbox"
)

// Decode maps a parameter set onto a part design, starting from the
// built-in defaults. Names the decoder does not recognize are
// ignored, the way the customizer skips stale names in saved sets.
// Parameters apply in sorted name order, so the keyed and dogged
// switches land after the dimensions they control.
//
// Recognized names:
//
//	type             part selector: spur, bevel, shifter, fork,
//	                 shifter&fork, test
//	gear_module, teeth, gear_width, bore_diameter, pressure_angle
//	keyed, key_width, key_height
//	dogged, dog_count, dog_offset, dog_angle, dog_radius,
//	dog_thickness, dog_height, dog_direction, dog_face
//	shifter_diameter, shifter_bore, shifter_width,
//	fork_groove_width, fork_groove_diameter
//	fork_diameter, fork_thickness, fork_angle, fork_width,
//	rod_height, rod_angle, rod_thickness, fork_bore
//
// Angles are degrees. The key_* and dog_* dimensions feed both the
// gear and the shifter, which share one keyway and one tooth form.
func Decode(p Params) (gearbox.Design, error) {
	d := gearbox.DefaultDesign()
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := apply(&d, name, p[name]); err != nil {
			return gearbox.Design{}, fmt.Errorf("parameter %s=%q: %w", name, p[name], err)
		}
	}
	return d, nil
}

func apply(d *gearbox.Design, name, value string) error {
	var err error
	switch name {
	case "type":
		d.Part, err = gearbox.ParsePartKind(value)
	case "gear_module":
		d.Gear.Module, err = parseFloat(value)
	case "teeth":
		d.Gear.Teeth, err = strconv.Atoi(value)
	case "gear_width":
		d.Gear.Width, err = parseFloat(value)
	case "bore_diameter":
		d.Gear.BoreDiameter, err = parseFloat(value)
	case "pressure_angle":
		d.Gear.PressureAngle, err = parseFloat(value)
	case "keyed":
		var on bool
		on, err = strconv.ParseBool(value)
		if err == nil && !on {
			d.Keyway = nil
			d.Shifter.Keyway = nil
		}
	case "key_width":
		var w float64
		w, err = parseFloat(value)
		if err == nil {
			d.Keyway.Width = w
			d.Shifter.Keyway.Width = w
		}
	case "key_height":
		var h float64
		h, err = parseFloat(value)
		if err == nil {
			d.Keyway.Height = h
			d.Shifter.Keyway.Height = h
		}
	case "dogged":
		var on bool
		on, err = strconv.ParseBool(value)
		if err == nil && !on {
			d.DogRing = nil
		}
	case "dog_count":
		var n int
		n, err = strconv.Atoi(value)
		if err == nil {
			d.DogRing.Count = n
			d.Shifter.DogRing.Count = n
		}
	case "dog_offset":
		err = setRing(d, value, func(k *gearbox.DogRingSpec, v float64) { k.RadialOffset = v })
	case "dog_angle":
		err = setRing(d, value, func(k *gearbox.DogRingSpec, v float64) { k.ToothAngle = v })
	case "dog_radius":
		err = setRing(d, value, func(k *gearbox.DogRingSpec, v float64) { k.ToothRadius = v })
	case "dog_thickness":
		err = setRing(d, value, func(k *gearbox.DogRingSpec, v float64) { k.ToothThickness = v })
	case "dog_height":
		err = setRing(d, value, func(k *gearbox.DogRingSpec, v float64) { k.Height = v })
	case "dog_direction":
		d.DogRing.Direction, err = gearbox.ParseDirection(value)
	case "dog_face":
		d.DogRing.Face, err = gearbox.ParseFace(value)
	case "shifter_diameter":
		d.Shifter.OuterDiameter, err = parseFloat(value)
	case "shifter_bore":
		d.Shifter.BoreDiameter, err = parseFloat(value)
	case "shifter_width":
		d.Shifter.Width, err = parseFloat(value)
	case "fork_groove_width":
		d.Shifter.ForkGrooveWidth, err = parseFloat(value)
	case "fork_groove_diameter":
		d.Shifter.ForkGrooveDiameter, err = parseFloat(value)
	case "fork_diameter":
		var v float64
		v, err = parseFloat(value)
		if err == nil {
			d.Fork.EngagementRadius = v / 2
		}
	case "fork_thickness":
		d.Fork.EngagementThickness, err = parseFloat(value)
	case "fork_angle":
		d.Fork.EngagementAngle, err = parseFloat(value)
	case "fork_width":
		d.Fork.Width, err = parseFloat(value)
	case "rod_height":
		d.Fork.RodHeight, err = parseFloat(value)
	case "rod_angle":
		d.Fork.RodAngle, err = parseFloat(value)
	case "rod_thickness":
		d.Fork.RodThickness, err = parseFloat(value)
	case "fork_bore":
		d.Fork.BoreDiameter, err = parseFloat(value)
	}
	return err
}

// setRing writes one tooth dimension to both the gear ring and the
// shifter ring.
func setRing(d *gearbox.Design, value string, set func(*gearbox.DogRingSpec, float64)) error {
	v, err := parseFloat(value)
	if err != nil {
		return err
	}
	set(d.DogRing, v)
	set(&d.Shifter.DogRing, v)
	return nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
