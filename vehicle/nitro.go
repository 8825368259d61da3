package vehicle

// updateNitro burns fuel while boost is held and rewards airborne tricks
func (v *Vehicle) updateNitro(dt float64) {
	n := v.tuning.Nitro
	before := v.nitro.Current

	if v.control.Boost && v.nitro.Current > 0 {
		v.ActivateBoost(true)
		v.nitro.Current -= n.BurnRate * dt
	} else {
		v.ActivateBoost(false)
	}

	if !v.grounded && v.trick.Active(v.tuning.Trick.Deadzone) {
		v.nitro.Current += n.RewardRate * dt
	}
	v.nitro.clamp()

	if before > 0 && v.nitro.Current == 0 {
		v.logger.Debug().Msg("Nitro empty")
		v.emit(EventNitroEmpty, 0)
	}
}

// Nitro returns the tank state
func (v *Vehicle) Nitro() NitroTank { return v.nitro }

