package walletrules

// SetCoolOffHours changes the cool off time while keeping the max voting
// time, so the base voting time absorbs the difference.
func (e *Editor) SetCoolOffHours(coolOffHours uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current.CoolOffHours = coolOffHours
	e.current.BaseVoteDays = baseVoteDays(e.current.MaxVoteDays, coolOffHours)
}

// SetMaxVoteDays changes the max voting time while keeping the cool off
// time, so the base voting time absorbs the difference.
func (e *Editor) SetMaxVoteDays(maxVoteDays float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current.MaxVoteDays = maxVoteDays
	e.current.BaseVoteDays = baseVoteDays(maxVoteDays, e.current.CoolOffHours)
}

// baseVoteDays solves max = base + cool off for base. Both sides are
// converted to seconds first.
func baseVoteDays(maxVoteDays float64, coolOffHours uint32) float64 {
	maxVotingSeconds := maxVoteDays * secondsPerDay
	coolOffSeconds := float64(coolOffHours) * secondsPerHour
	return (maxVotingSeconds - coolOffSeconds) / secondsPerDay
}
