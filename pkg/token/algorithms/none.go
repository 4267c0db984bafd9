package algorithms

// None is the name of the unsigned algorithm
const None = "none"

// noneAlgorithm produces and accepts only empty signatures
type noneAlgorithm struct {
	BaseAlgorithm
}

func (n *noneAlgorithm) Sign(signingInput []byte, key interface{}) ([]byte, error) {
	return nil, nil
}

func (n *noneAlgorithm) Verify(signingInput, signature []byte, key interface{}) error {
	if len(signature) != 0 {
		return ErrInvalidSignature
	}
	return nil
}

func init() {
	register(&noneAlgorithm{
		BaseAlgorithm: BaseAlgorithm{
			name:    None,
			keyType: KeyTypeNone,
		},
	})
}
