package service

import (
	"fmt"
	"svim/config"
	"svim/internal/domains/availability/model"
	"time"
)

// BusinessHoursFromConfig reads the AVAILABILITY_* window settings.
func BusinessHoursFromConfig(cfg *config.Config, loc *time.Location) (model.BusinessHours, error) {
	open, err := model.ParseClock(cfg.Availability.OpenTime)
	if err != nil {
		return model.BusinessHours{}, fmt.Errorf("open time: %w", err)
	}

	closing, err := model.ParseClock(cfg.Availability.CloseTime)
	if err != nil {
		return model.BusinessHours{}, fmt.Errorf("close time: %w", err)
	}

	excluded := make([]time.Weekday, 0, len(cfg.Availability.ExcludedWeekdays))

	for _, day := range cfg.Availability.ExcludedWeekdays {
		if day < int(time.Sunday) || day > int(time.Saturday) {
			return model.BusinessHours{}, fmt.Errorf("%w: excluded weekday %d must be 0 (Sunday) to 6 (Saturday)", model.ErrInvalidArgument, day)
		}

		excluded = append(excluded, time.Weekday(day))
	}

	hours := model.BusinessHours{
		Open:             open,
		Close:            closing,
		StepMinutes:      cfg.Availability.StepMinutes,
		ExcludedWeekdays: excluded,
		Location:         loc,
	}

	if err := hours.Validate(); err != nil {
		return model.BusinessHours{}, err
	}

	return hours, nil
}
