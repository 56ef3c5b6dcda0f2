package entity

import "time"

// Ayar kategorileri.
const (
	SettingCategoryGeneral = "general"
	SettingCategoryPayroll = "payroll"
	SettingCategoryLeave   = "leave"
)

// Bilinen ayar anahtarları.
const (
	SettingMinimumWage          = "payroll.minimum_wage"
	SettingSGKEmployeeRate      = "payroll.sgk_employee_rate"
	SettingUnemploymentEmpRate  = "payroll.unemployment_employee_rate"
	SettingSGKEmployerRate      = "payroll.sgk_employer_rate"
	SettingUnemploymentEmployer = "payroll.unemployment_employer_rate"
	SettingStampTaxRate         = "payroll.stamp_tax_rate"
	SettingSGKCeilingMultiplier = "payroll.sgk_ceiling_multiplier"
	SettingLeaveAllowNegative   = "leave.allow_negative_balance"
	SettingGeneralTimezone      = "general.timezone"
)

// SystemSetting şirket bazlı anahtar/değer ayarı.
type SystemSetting struct {
	ID          string    `json:"id" bson:"_id"`
	CompanyID   string    `json:"company_id" bson:"company_id"`
	Key         string    `json:"key" bson:"key"`
	Value       string    `json:"value" bson:"value"`
	Category    string    `json:"category" bson:"category"`
	Description string    `json:"description" bson:"description"`
	UpdatedBy   string    `json:"updated_by" bson:"updated_by"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// DefaultSettings eksik ayarlar için kullanılan varsayılanlar (2025 değerleri).
var DefaultSettings = []SystemSetting{
	{Key: SettingMinimumWage, Value: "26005.50", Category: SettingCategoryPayroll, Description: "Aylık brüt asgari ücret"},
	{Key: SettingSGKEmployeeRate, Value: "0.14", Category: SettingCategoryPayroll, Description: "SGK işçi payı oranı"},
	{Key: SettingUnemploymentEmpRate, Value: "0.01", Category: SettingCategoryPayroll, Description: "İşsizlik sigortası işçi payı"},
	{Key: SettingSGKEmployerRate, Value: "0.1575", Category: SettingCategoryPayroll, Description: "SGK işveren payı oranı"},
	{Key: SettingUnemploymentEmployer, Value: "0.02", Category: SettingCategoryPayroll, Description: "İşsizlik sigortası işveren payı"},
	{Key: SettingStampTaxRate, Value: "0.00759", Category: SettingCategoryPayroll, Description: "Damga vergisi oranı"},
	{Key: SettingSGKCeilingMultiplier, Value: "7.5", Category: SettingCategoryPayroll, Description: "SGK tavanı (asgari ücretin katı)"},
	{Key: SettingLeaveAllowNegative, Value: "false", Category: SettingCategoryLeave, Description: "Yıllık izin bakiyesi eksiye düşebilir mi"},
	{Key: SettingGeneralTimezone, Value: "Europe/Istanbul", Category: SettingCategoryGeneral, Description: "Şirket saat dilimi"},
}

// DefaultSetting anahtarın varsayılanını döner.
func DefaultSetting(key string) (SystemSetting, bool) {
	for _, s := range DefaultSettings {
		if s.Key == key {
			return s, true
		}
	}
	return SystemSetting{}, false
}
