package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

func ValidateCreateCardInput(input CreateCardInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.DentistName) == "" {
		errors = append(errors, ValidationError{"dentist_name", "is required"})
	} else if len(input.DentistName) > 200 {
		errors = append(errors, ValidationError{"dentist_name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Pipeline) == "" {
		errors = append(errors, ValidationError{"pipeline", "is required"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.CPF != "" && !isValidCPF(input.CPF) {
		errors = append(errors, ValidationError{"cpf", "is invalid"})
	}
	if input.CNPJ != "" && !isValidCNPJ(input.CNPJ) {
		errors = append(errors, ValidationError{"cnpj", "is invalid"})
	}
	if input.CEP != "" && !isValidZipCode(input.CEP) {
		errors = append(errors, ValidationError{"cep", "must be a valid zip code (XXXXX-XXX)"})
	}

	if input.PotentialValue < 0 {
		errors = append(errors, ValidationError{"potential_value", "must not be negative"})
	}

	if input.ExpectedCloseDate != "" && !isValidDate(input.ExpectedCloseDate) {
		errors = append(errors, ValidationError{"expected_close_date", "must be a valid date (YYYY-MM-DD)"})
	}

	return errors
}

func isValidCPF(cpf string) bool {
	cleaned := nonDigits.ReplaceAllString(cpf, "")

	if len(cleaned) != 11 {
		return false
	}

	firstDigit := cleaned[0]
	allEqual := true
	for i := 1; i < len(cleaned); i++ {
		if cleaned[i] != firstDigit {
			allEqual = false
			break
		}
	}
	return !allEqual
}

func isValidCNPJ(cnpj string) bool {
	cleaned := nonDigits.ReplaceAllString(cnpj, "")
	return len(cleaned) == 14
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 11
}

func isValidZipCode(zipcode string) bool {
	cleaned := nonDigits.ReplaceAllString(zipcode, "")
	return len(cleaned) == 8
}

func isValidDate(dateStr string) bool {
	if _, err := time.Parse("2006-01-02", dateStr); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return true
	}
	return false
}

func formatValidationErrors(errs []ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Field + " (" + e.Message + ")"
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
