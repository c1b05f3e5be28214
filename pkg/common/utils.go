package common

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

// Let is a conditional expression over ints.
func Let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}
