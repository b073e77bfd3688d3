package vehicle

type Type string

const (
	TypeCar        Type = "car"
	TypeMotorcycle Type = "motorcycle"
	TypeBicycle    Type = "bicycle"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeCar, TypeMotorcycle, TypeBicycle:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
