package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/teachflow/internal/services"
)

func (handler *Handler) ListStudents(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	students, err := handler.studentService.List(caller, services.StudentListFilter{
		Status:       c.Query("status"),
		ContractorID: c.Query("contractor_id"),
		Search:       c.Query("search"),
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "students", students)
}

func (handler *Handler) GetStudent(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	details, err := handler.studentService.Get(caller, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"student":         details.Student,
		"recent_classes":  details.RecentClasses,
		"recent_payments": details.RecentPayments,
		"counts":          details.Usage,
	})
}

func (handler *Handler) CreateStudent(c *fiber.Ctx) error {
	return handler.saveStudent(c, "")
}

func (handler *Handler) UpdateStudent(c *fiber.Ctx) error {
	return handler.saveStudent(c, c.Params("id"))
}

func (handler *Handler) saveStudent(c *fiber.Ctx, studentID string) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := studentInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	serviceInput, err := input.toService(caller.Location())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	if studentID == "" {
		student, err := handler.studentService.Create(caller, serviceInput)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		return respondSuccess(c, fiber.StatusCreated, "student", student)
	}

	student, err := handler.studentService.Update(caller, studentID, serviceInput)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "student", student)
}

func (handler *Handler) DeleteStudent(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.studentService.Delete(caller, c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", nil)
}
