package sim

import "github.com/samber/lo"

// setGreen sets every canonical direction green if it is requested and red
// otherwise. It performs no conflict validation; avoiding collisions is the
// policy's job. Duplicates and unknown values are ignored.
func setGreen(st *State, dirs []Direction) []Direction {
	var applied []Direction
	for _, d := range Directions {
		if lo.Contains(dirs, d) {
			st.Lights[d] = Green
			applied = append(applied, d)
			continue
		}
		st.Lights[d] = Red
	}
	return applied
}

// isSafe is the advisory predicate shared by the engine and snapshots.
// occupants are the directions of non-crashed moving vehicles inside the
// intersection.
func isSafe(crashed int, occupants, dirs []Direction) bool {
	if crashed > 0 {
		return false
	}
	for _, o := range occupants {
		if !lo.Contains(dirs, o) {
			return false
		}
	}
	for i := 0; i < len(dirs); i++ {
		for j := i + 1; j < len(dirs); j++ {
			if !dirs[i].Parallel(dirs[j]) {
				return false
			}
		}
	}
	return true
}

// occupants lists the directions of vehicles committed inside the box.
func occupants(st *State, l layout) []Direction {
	var out []Direction
	for _, v := range st.Vehicles {
		if !v.Crashed && v.State == Moving && l.inIntersection(v.Pos) {
			out = append(out, v.Direction)
		}
	}
	return out
}
