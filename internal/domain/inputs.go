package domain

type AllocateInput struct {
	Label string
	Rows  []DeviceRow
}
