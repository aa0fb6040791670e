package combat

// ReloadSwayScale converts reload progress into the aim sway published to
// renderers.
const ReloadSwayScale = 12

// ReloadState is the progress of one reload.
type ReloadState struct {
	Elapsed float64
}

// StepReload advances st by dt unless paused and reports whether the reload
// is finished. A finished reload has already moved ammo into the magazine;
// the caller drops st.
func (p *Profile) StepReload(st *ReloadState, dt float64, paused bool) bool {
	if p == nil || st == nil {
		return true
	}

	switch p.Reload {
	case ReloadNone:
		return true
	case ReloadBasic:
		if !p.advanceReload(st, dt, paused) {
			return false
		}
		p.refill(p.MagSize - p.MagAmmo)
		return true
	case ReloadPerRound:
		if !p.advanceReload(st, dt, paused) {
			return false
		}
		p.refill(1)
		return true
	}
	return true
}

func (p *Profile) advanceReload(st *ReloadState, dt float64, paused bool) bool {
	if !paused {
		st.Elapsed += dt
	}
	return st.Elapsed+gateEpsilon >= p.ReloadTime
}

// refill moves up to want rounds into the magazine, bounded by the free
// magazine space and, for finite weapons, by the reserve.
func (p *Profile) refill(want int) {
	n := min(want, p.MagSize-p.MagAmmo)
	if !p.Infinite {
		n = min(n, p.Ammo)
	}
	if n <= 0 {
		return
	}
	if !p.Infinite {
		p.Ammo -= n
	}
	p.MagAmmo += n
}

// Sway is the aim perturbation for a reload in progress.
func (p *Profile) Sway(st *ReloadState) float64 {
	if p == nil || st == nil || p.Reload == ReloadNone || p.ReloadTime <= 0 {
		return 0
	}
	return st.Elapsed / p.ReloadTime * ReloadSwayScale
}
