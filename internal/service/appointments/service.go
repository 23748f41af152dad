package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/lock"
	appointmentRepo "github.com/m04kA/clinic-scheduling-service/internal/infra/storage/appointment"
	"github.com/m04kA/clinic-scheduling-service/internal/service/appointments/models"
	"github.com/m04kA/clinic-scheduling-service/pkg/metrics"
)

// systemActorID автор переходов, выполненных по времени
const systemActorID int64 = 0

// Service журнал записей на прием
// Единственная точка записи для занятости слотов
type Service struct {
	appointmentRepo AppointmentRepository
	eventRepo       EventRepository
	locker          SlotLocker
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	eventRepo EventRepository,
	locker SlotLocker,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		eventRepo:       eventRepo,
		locker:          locker,
		txManager:       txManager,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Book создает запись в статусе PENDING на слот
// Занятый слот (блокировка или уникальный индекс) дает ErrSlotUnavailable без ожидания
func (s *Service) Book(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s.logger.Info("Book: doctor=%d, patient=%d, date=%s, slot=%s",
		appt.DoctorID, appt.PatientID, appt.Date.Format(domain.DateFormat), appt.Slot)

	// 1. Валидация входных данных
	if err := validateBooking(appt); err != nil {
		s.logger.Warn("Book: validation failed: %v", err)
		return nil, err
	}

	appt.Status = domain.StatusPending
	key := lock.SlotKey(appt.DoctorID, appt.Date, appt.Slot)
	lockStart := time.Now()

	var created *domain.Appointment
	insert := func(insertCtx context.Context) error {
		return s.txManager.Do(insertCtx, func(txCtx context.Context) error {
			stored, err := s.appointmentRepo.Create(txCtx, appt)
			if err != nil {
				return err
			}

			event := &domain.AppointmentEvent{
				AppointmentID: stored.ID,
				ToStatus:      domain.StatusPending,
				ActorID:       appt.PatientID,
			}
			if err := s.eventRepo.Append(txCtx, event); err != nil {
				return err
			}

			created = stored
			return nil
		})
	}

	// 2. Захватываем слот и вставляем запись вместе с событием создания
	err := s.locker.WithSlotLock(ctx, key, func(lockCtx context.Context) error {
		s.metrics.ObserveSlotLock(time.Since(lockStart))
		return insert(lockCtx)
	})

	// Хранилище блокировок недоступно: вставляем без блокировки, уникальный индекс остается гарантией
	if errors.Is(err, lock.ErrAcquire) {
		s.metrics.ObserveSlotLockFallback()
		s.logger.Warn("Book: slot lock backend failed, booking under unique index only, key=%s: %v", key, err)
		err = insert(ctx)
	}

	// 3. Классифицируем результат
	switch {
	case err == nil:
		s.metrics.ObserveBooking(metrics.BookingOutcomeSuccess)
		s.logger.Info("Book: created appointment id=%d", created.ID)
		return created, nil

	case errors.Is(err, lock.ErrLockNotAcquired):
		s.metrics.ObserveBooking(metrics.BookingOutcomeConflict)
		s.logger.Warn("Book: slot lock is held, key=%s", key)
		return nil, fmt.Errorf("%w: slot is being booked concurrently", ErrSlotUnavailable)

	case errors.Is(err, appointmentRepo.ErrSlotTaken):
		s.metrics.ObserveBooking(metrics.BookingOutcomeConflict)
		s.logger.Warn("Book: slot already taken, key=%s", key)
		return nil, fmt.Errorf("%w: slot already has an active appointment", ErrSlotUnavailable)

	default:
		s.metrics.ObserveBooking(metrics.BookingOutcomeError)
		s.logger.Error("Book: failed to create appointment, key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: Book - repository error: %v", ErrStorageUnavailable, err)
	}
}

// Cancel отменяет запись из PENDING или CONFIRMED
// Отменить может только врач или пациент записи
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment id=%d by user=%d", id, req.RequesterID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	now := s.timeProvider.Now()
	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись (в транзакции строка блокируется)
		appt, err := s.getAppointment(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		// 2. Проверяем права
		if !appt.IsParticipant(req.RequesterID) {
			s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.RequesterID, id)
			return ErrAccessDenied
		}

		// 3. Проверяем переход по наблюдаемому статусу
		effective := appt.EffectiveStatus(now)
		if !domain.CanTransition(effective, domain.StatusCancelled) {
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, effective)
			return fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, effective)
		}

		// 4. Меняем статус и пишем событие
		updated, err := s.transition(txCtx, "Cancel", appointmentRepo.StatusUpdate{
			ID:      id,
			From:    appt.Status,
			To:      domain.StatusCancelled,
			ActorID: req.RequesterID,
			Reason:  req.CancellationReason,
		})
		if err != nil {
			return err
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, s.classify("Cancel", err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled by user=%d", id, req.RequesterID)
	return models.FromDomainAppointment(result.ResolveStatus(now)), nil
}

// Confirm подтверждает запись из PENDING
// Подтвердить может только врач записи и только до окончания слота
func (s *Service) Confirm(ctx context.Context, id int64, doctorID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: appointment id=%d by doctor=%d", id, doctorID)

	now := s.timeProvider.Now()
	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.getAppointment(txCtx, "Confirm", id)
		if err != nil {
			return err
		}

		if appt.DoctorID != doctorID {
			s.logger.Warn("Confirm: access denied for user=%d to appointment id=%d", doctorID, id)
			return ErrAccessDenied
		}

		if !domain.CanTransition(appt.Status, domain.StatusConfirmed) {
			s.logger.Warn("Confirm: appointment id=%d cannot be confirmed, status=%s", id, appt.EffectiveStatus(now))
			return fmt.Errorf("%w: cannot confirm from %s", ErrInvalidTransition, appt.EffectiveStatus(now))
		}

		if appt.HasElapsed(now) {
			s.logger.Warn("Confirm: appointment id=%d slot has already elapsed", id)
			return fmt.Errorf("%w: slot has already elapsed", ErrInvalidTransition)
		}

		updated, err := s.transition(txCtx, "Confirm", appointmentRepo.StatusUpdate{
			ID:      id,
			From:    domain.StatusPending,
			To:      domain.StatusConfirmed,
			ActorID: doctorID,
		})
		if err != nil {
			return err
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, s.classify("Confirm", err)
	}

	s.logger.Info("Confirm: appointment id=%d confirmed by doctor=%d", id, doctorID)
	return models.FromDomainAppointment(result.ResolveStatus(now)), nil
}

// Get получает запись по ID для участника записи
func (s *Service) Get(ctx context.Context, id int64, requesterID int64) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	if !appt.IsParticipant(requesterID) {
		s.logger.Warn("Get: access denied for user=%d to appointment id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt.ResolveStatus(s.timeProvider.Now())), nil
}

// History получает журнал переходов записи для участника записи
func (s *Service) History(ctx context.Context, id int64, requesterID int64) (*models.HistoryResponse, error) {
	appt, err := s.getAppointment(ctx, "History", id)
	if err != nil {
		return nil, err
	}

	if !appt.IsParticipant(requesterID) {
		s.logger.Warn("History: access denied for user=%d to appointment id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	events, err := s.eventRepo.GetByAppointment(ctx, id)
	if err != nil {
		s.logger.Error("History: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrStorageUnavailable, err)
	}

	return models.FromDomainHistory(id, events), nil
}

// ListForDoctor получает записи врача, запрашивать может только сам врач
func (s *Service) ListForDoctor(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListForDoctor: doctor=%d, requester=%d", req.OwnerID, req.RequesterID)

	if req.RequesterID != req.OwnerID {
		s.logger.Warn("ListForDoctor: access denied for user=%d to doctor=%d", req.RequesterID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	return s.list(ctx, "ListForDoctor", req, domain.AppointmentFilter{DoctorID: &req.OwnerID})
}

// ListForPatient получает записи пациента, запрашивать может только сам пациент
func (s *Service) ListForPatient(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListForPatient: patient=%d, requester=%d", req.OwnerID, req.RequesterID)

	if req.RequesterID != req.OwnerID {
		s.logger.Warn("ListForPatient: access denied for user=%d to patient=%d", req.RequesterID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	return s.list(ctx, "ListForPatient", req, domain.AppointmentFilter{PatientID: &req.OwnerID})
}

// CompleteElapsed сохраняет COMPLETED для подтвержденных записей, слот которых закончился
// Чтения вычисляют COMPLETED сами, поэтому пропуск запуска ничего не ломает
func (s *Service) CompleteElapsed(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()
	completed := 0

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		ids, err := s.appointmentRepo.CompleteElapsed(txCtx, now)
		if err != nil {
			return err
		}

		from := domain.StatusConfirmed
		for _, id := range ids {
			event := &domain.AppointmentEvent{
				AppointmentID: id,
				FromStatus:    &from,
				ToStatus:      domain.StatusCompleted,
				ActorID:       systemActorID,
			}
			if err := s.eventRepo.Append(txCtx, event); err != nil {
				return err
			}
		}

		completed = len(ids)
		return nil
	})
	if err != nil {
		s.logger.Error("CompleteElapsed: failed to complete appointments: %v", err)
		return 0, fmt.Errorf("%w: CompleteElapsed - repository error: %v", ErrStorageUnavailable, err)
	}

	if completed > 0 {
		s.logger.Info("CompleteElapsed: %d appointments completed", completed)
	}
	return completed, nil
}

func (s *Service) list(ctx context.Context, op string, req *models.ListAppointmentsRequest, filter domain.AppointmentFilter) (*models.AppointmentListResponse, error) {
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: owner ID must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		parsed, ok := domain.ParseAppointmentStatus(*req.Status)
		if !ok {
			s.logger.Warn("%s: invalid status=%s", op, *req.Status)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		status = &parsed
	}

	filter.StartDate = req.From
	filter.EndDate = req.To

	list, err := s.appointmentRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error for owner=%d: %v", op, req.OwnerID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStorageUnavailable, op, err)
	}

	// Фильтр по статусу применяется к наблюдаемому статусу
	now := s.timeProvider.Now()
	result := make([]*domain.Appointment, 0, len(list))
	for _, appt := range list {
		appt.ResolveStatus(now)
		if status != nil && appt.Status != *status {
			continue
		}
		result = append(result, appt)
	}

	s.logger.Info("%s: fetched %d appointments for owner=%d", op, len(result), req.OwnerID)
	return models.FromDomainAppointmentList(result), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStorageUnavailable, op, err)
	}
	return appt, nil
}

// transition меняет статус по принципу compare-and-set и пишет событие
func (s *Service) transition(ctx context.Context, op string, upd appointmentRepo.StatusUpdate) (*domain.Appointment, error) {
	updated, err := s.appointmentRepo.UpdateStatus(ctx, upd)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrStatusConflict):
			s.logger.Warn("%s: appointment id=%d status changed concurrently", op, upd.ID)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		default:
			s.logger.Error("%s: repository error for appointment id=%d: %v", op, upd.ID, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStorageUnavailable, op, err)
		}
	}

	from := upd.From
	event := &domain.AppointmentEvent{
		AppointmentID: upd.ID,
		FromStatus:    &from,
		ToStatus:      upd.To,
		ActorID:       upd.ActorID,
		Reason:        upd.Reason,
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		s.logger.Error("%s: failed to append event for appointment id=%d: %v", op, upd.ID, err)
		return nil, fmt.Errorf("%w: %s - event error: %v", ErrStorageUnavailable, op, err)
	}

	return updated, nil
}

// classify оставляет ошибки сервиса как есть, остальное считает ошибкой хранилища
func (s *Service) classify(op string, err error) error {
	switch {
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrStorageUnavailable):
		return err
	default:
		s.logger.Error("%s: transaction error: %v", op, err)
		return fmt.Errorf("%w: %s - transaction error: %v", ErrStorageUnavailable, op, err)
	}
}

// validateBooking валидирует запись перед вставкой
func validateBooking(appt *domain.Appointment) error {
	if appt.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}
	if appt.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}
	if appt.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := appt.Slot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid slot: %v", ErrInvalidInput, err)
	}
	// Ключ блокировки и ключ слота в хранилище строятся по HH:MM
	appt.Slot = appt.Slot.Canonical()
	if appt.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if appt.Notes != nil && len(*appt.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
