package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roastery/internal/model"
)

func validCustomer() model.CustomerInfo {
	return model.CustomerInfo{
		FullName: "Fatima Al Mansouri",
		Email:    "fatima@example.com",
		Phone:    "+971 50 123 4567",
	}
}

func validShipping() model.ShippingInfo {
	return model.ShippingInfo{
		Emirate: "Dubai",
		City:    "Jumeirah",
		Address: "Villa 12, Street 8b, Jumeirah 1",
	}
}

func TestValidateCustomerInfo(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.CustomerInfo)
		field  string
		key    string
	}{
		{"valid info passes", func(*model.CustomerInfo) {}, "", ""},
		{"empty name", func(c *model.CustomerInfo) { c.FullName = "   " }, "fullName", "full_name_required"},
		{"email missing at sign", func(c *model.CustomerInfo) { c.Email = "fatima.example.com" }, "email", "invalid_email"},
		{"email missing tld", func(c *model.CustomerInfo) { c.Email = "fatima@example" }, "email", "invalid_email"},
		{"phone too short", func(c *model.CustomerInfo) { c.Phone = "+9715" }, "phone", "invalid_phone"},
		{"phone too long", func(c *model.CustomerInfo) { c.Phone = "123456789012345678901" }, "phone", "invalid_phone"},
		{"phone with letters", func(c *model.CustomerInfo) { c.Phone = "050-CALL-ME" }, "phone", "invalid_phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validCustomer()
			tt.mutate(&info)

			errs := ValidateCustomerInfo(info)
			if tt.field == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Equal(t, tt.key, errs[tt.field])
		})
	}
}

func TestValidateCustomerInfo_PhoneSeparatorsCleaned(t *testing.T) {
	info := validCustomer()
	info.Phone = "(050) 123-45.67"
	assert.Nil(t, ValidateCustomerInfo(info))
}

func TestValidateShippingInfo(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ShippingInfo)
		field  string
		key    string
	}{
		{"valid info passes", func(*model.ShippingInfo) {}, "", ""},
		{"missing emirate", func(s *model.ShippingInfo) { s.Emirate = "" }, "emirate", "emirate_required"},
		{"missing city", func(s *model.ShippingInfo) { s.City = "" }, "city", "city_required"},
		{"city from another emirate", func(s *model.ShippingInfo) { s.City = "Al Ain" }, "city", "city_not_in_emirate"},
		{"short address blocks the step", func(s *model.ShippingInfo) { s.Address = "Villa 5" }, "address", "complete_address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validShipping()
			tt.mutate(&info)

			errs := ValidateShippingInfo(info)
			if tt.field == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Equal(t, tt.key, errs[tt.field])
		})
	}
}

func TestValidateShippingInfo_CityCheckCaseInsensitive(t *testing.T) {
	info := validShipping()
	info.Emirate = "dubai"
	info.City = "jumeirah"
	assert.Nil(t, ValidateShippingInfo(info))
}

func TestCitiesFor(t *testing.T) {
	assert.NotEmpty(t, CitiesFor("Sharjah"))
	assert.NotEmpty(t, CitiesFor("ras al khaimah"))
	assert.Nil(t, CitiesFor("Riyadh"))
	assert.Len(t, Emirates(), 7)
}
