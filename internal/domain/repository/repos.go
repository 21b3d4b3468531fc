package repository

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Companies       CompanyRepository
	Users           UserRepository
	Employees       EmployeeRepository
	Jobs            JobRepository
	Applications    ApplicationRepository
	Customers       CustomerRepository
	Leads           LeadRepository
	LeadActivities  LeadActivityRepository
	Tickets         TicketRepository
	TicketResponses TicketResponseRepository
	Leaves          LeaveRepository
	Attendance      AttendanceRepository
	Payroll         PayrollRepository
	Transitions     TransitionRepository
}
