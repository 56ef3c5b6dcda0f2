package entity

// Yetkiler "kaynak:eylem" biçimindedir.
const (
	PermCompaniesManage   = "companies:manage"
	PermCompanyRead       = "company:read"
	PermCompanyWrite      = "company:write"
	PermUsersRead         = "users:read"
	PermUsersWrite        = "users:write"
	PermDepartmentsRead   = "departments:read"
	PermDepartmentsWrite  = "departments:write"
	PermEmployeesRead     = "employees:read"
	PermEmployeesWrite    = "employees:write"
	PermLeavesRead        = "leaves:read"
	PermLeavesWrite       = "leaves:write"
	PermLeavesApprove     = "leaves:approve"
	PermPerformanceRead   = "performance:read"
	PermPerformanceWrite  = "performance:write"
	PermPayrollRead       = "payroll:read"
	PermPayrollWrite      = "payroll:write"
	PermPayrollApprove    = "payroll:approve"
	PermJobsRead          = "jobs:read"
	PermJobsWrite         = "jobs:write"
	PermApplicationsRead  = "applications:read"
	PermApplicationsWrite = "applications:write"
	PermTrainingsRead     = "trainings:read"
	PermTrainingsWrite    = "trainings:write"
	PermSettingsRead      = "settings:read"
	PermSettingsWrite     = "settings:write"
	PermAuditRead         = "audit:read"
	PermDashboardRead     = "dashboard:read"
)

var hrPermissions = []string{
	PermCompanyRead, PermUsersRead, PermDepartmentsRead, PermDepartmentsWrite,
	PermEmployeesRead, PermEmployeesWrite, PermLeavesRead, PermLeavesWrite, PermLeavesApprove,
	PermPerformanceRead, PermPerformanceWrite, PermPayrollRead, PermPayrollWrite, PermPayrollApprove,
	PermJobsRead, PermJobsWrite, PermApplicationsRead, PermApplicationsWrite,
	PermTrainingsRead, PermTrainingsWrite, PermSettingsRead, PermDashboardRead,
}

var adminPermissions = append([]string{
	PermCompanyWrite, PermUsersWrite, PermSettingsWrite, PermAuditRead,
}, hrPermissions...)

var rolePermissions = map[string]map[string]bool{
	RoleSuperAdmin: toSet(append([]string{PermCompaniesManage}, adminPermissions...)),
	RoleAdmin:      toSet(adminPermissions),
	RoleHRManager:  toSet(hrPermissions),
	RoleManager: toSet([]string{
		PermCompanyRead, PermDepartmentsRead, PermEmployeesRead,
		PermLeavesRead, PermLeavesWrite, PermLeavesApprove,
		PermPerformanceRead, PermPerformanceWrite,
		PermJobsRead, PermApplicationsRead, PermTrainingsRead, PermDashboardRead,
	}),
	RoleEmployee: toSet([]string{
		PermCompanyRead, PermDepartmentsRead, PermLeavesRead, PermLeavesWrite,
		PermPerformanceRead, PermPayrollRead, PermJobsRead, PermTrainingsRead,
	}),
}

// HasPermission rolün verilen yetkiye sahip olup olmadığını söyler.
func HasPermission(role, perm string) bool {
	return rolePermissions[role][perm]
}

// PermissionsOf rolün yetkilerini döner (sıra garanti edilmez).
func PermissionsOf(role string) []string {
	set := rolePermissions[role]
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// IsHRRole personel kayıtlarının tamamını görebilen roller.
func IsHRRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleAdmin || role == RoleHRManager
}

func toSet(perms []string) map[string]bool {
	m := make(map[string]bool, len(perms))
	for _, p := range perms {
		m[p] = true
	}
	return m
}
