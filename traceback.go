package viterbi

// traceback finds the terminal state, discards the flush tail, and walks
// the path memory backward to reconstruct the information bits (§4.5).
func (d *Decoder) traceback() ([]uint8, error) {
	state, err := d.terminalState()
	if err != nil {
		return nil, err
	}

	recursive := d.code.NextTermOutput != nil

	for i := d.lenPrime - 1; i >= d.code.Len; i-- {
		path := uint32(d.columns[i][state] + 1)
		state = lshiftState(state, d.code.K, path)
	}

	out := make([]uint8, d.code.Len)
	for i := d.code.Len - 1; i >= 0; i-- {
		path := uint32(d.columns[i][state] + 1)
		if recursive {
			out[i] = uint8(path) ^ d.tr.vals[state]
		} else {
			out[i] = d.tr.vals[state]
		}
		state = lshiftState(state, d.code.K, path)
	}

	return out, nil
}

// terminalState picks the trellis state traceback starts from: state 0
// for FLUSH (the encoder was driven there), otherwise the state with the
// largest accumulated path metric.
func (d *Decoder) terminalState() (uint32, error) {
	if d.code.Term == Flush {
		return 0, nil
	}

	sums := d.sums[d.cur]
	max := int32(-1)
	state := 0
	for i, v := range sums {
		if int32(v) > max {
			max = int32(v)
			state = i
		}
	}
	if max < 0 {
		return 0, ErrProtocol
	}
	return uint32(state), nil
}
