package routers

import (
	"nutrisha-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController) {
	router.Get("/{patientID}/info", patientController.GetPatientInfo)
}
