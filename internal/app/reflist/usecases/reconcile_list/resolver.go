package reconcile_list

// idResolver maps client temporary ids to the ids the store assigned during
// the Added phase. It lives for exactly one batch.
type idResolver struct {
	byTemp map[string]string
}

func newIDResolver() *idResolver {
	return &idResolver{byTemp: make(map[string]string)}
}

// register records tempID -> id. The first registration of a tempID wins;
// it reports false when tempID was already taken.
func (r *idResolver) register(tempID, id string) bool {
	if _, taken := r.byTemp[tempID]; taken {
		return false
	}
	r.byTemp[tempID] = id
	return true
}

func (r *idResolver) resolve(tempID string) (string, bool) {
	id, ok := r.byTemp[tempID]
	return id, ok
}

func (r *idResolver) len() int {
	return len(r.byTemp)
}
