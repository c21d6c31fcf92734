package dto

type CreateAppointmentRequest struct {
	Barber   uint   `json:"barber"`
	Customer uint   `json:"customer"`
	Service  string `json:"service" binding:"required,max=100"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Notes    string `json:"notes" binding:"max=255"`
}

type AppointmentActionRequest struct {
	Action string `json:"action"`
}

type AppointmentStatusDTO struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}
