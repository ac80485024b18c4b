package handler

import (
	"context"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/hotel-pms/internal/core/property"
)

// PropertyGrpcHandler は PropertyService の gRPC 実装です。
type PropertyGrpcHandler struct {
	svc property.UseCase
}

// NewPropertyGrpcHandler は PropertyGrpcHandler を生成します。
func NewPropertyGrpcHandler(svc property.UseCase) *PropertyGrpcHandler {
	return &PropertyGrpcHandler{svc: svc}
}

type createPropertyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Rooms   int    `json:"rooms"`
}

type updatePropertyRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	Rooms   *int    `json:"rooms"`
}

type settingsRequest struct {
	PropertyID string `json:"property_id"`
}

type updateSettingsRequest struct {
	PropertyID   string  `json:"property_id"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Currency     *string `json:"currency"`
	Timezone     *string `json:"timezone"`
	Language     *string `json:"language"`
}

type propertyResponse struct {
	Property *propertyMessage `json:"property"`
}

type propertiesResponse struct {
	Properties []*propertyMessage `json:"properties"`
}

type settingsResponse struct {
	Settings *settingsMessage `json:"settings"`
}

// ListProperties は登録済みの施設を返します。
func (h *PropertyGrpcHandler) ListProperties(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	props, err := h.svc.ListProperties(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	out := make([]*propertyMessage, 0, len(props))
	for _, p := range props {
		out = append(out, toPropertyMessage(p))
	}
	return encode(propertiesResponse{Properties: out})
}

// CreateProperty は施設を追加します。
func (h *PropertyGrpcHandler) CreateProperty(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req createPropertyRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(field{"name", req.Name}); err != nil {
		return nil, err
	}
	created, err := h.svc.CreateProperty(ctx, property.CreatePropertyInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
		Rooms:   req.Rooms,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(propertyResponse{Property: toPropertyMessage(created)})
}

// UpdateProperty は施設を部分更新します。
func (h *PropertyGrpcHandler) UpdateProperty(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req updatePropertyRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(field{"id", req.ID}); err != nil {
		return nil, err
	}
	if err := rejectBlank("name", req.Name); err != nil {
		return nil, err
	}
	updated, err := h.svc.UpdateProperty(ctx, property.UpdatePropertyInput{
		ID:      req.ID,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
		Rooms:   req.Rooms,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(propertyResponse{Property: toPropertyMessage(updated)})
}

// DeleteProperty は施設を削除します。最後の 1 件は削除できません。
func (h *PropertyGrpcHandler) DeleteProperty(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := h.svc.DeleteProperty(ctx, property.DeletePropertyInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}
	return encode(struct{}{})
}

// CurrentProperty は選択中の施設を返します。
func (h *PropertyGrpcHandler) CurrentProperty(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	current, err := h.svc.CurrentProperty(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(propertyResponse{Property: toPropertyMessage(current)})
}

// SelectProperty は選択中の施設を切り替えます。
func (h *PropertyGrpcHandler) SelectProperty(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	selected, err := h.svc.SelectProperty(ctx, req.ID)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(propertyResponse{Property: toPropertyMessage(selected)})
}

// GetSettings は施設設定を返します。property_id の省略時は選択中の施設です。
func (h *PropertyGrpcHandler) GetSettings(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req settingsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	id, err := h.resolvePropertyID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	settings, err := h.svc.GetSettings(ctx, id)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(settingsResponse{Settings: toSettingsMessage(settings)})
}

// UpdateSettings は施設設定を部分更新します。
func (h *PropertyGrpcHandler) UpdateSettings(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req updateSettingsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	id, err := h.resolvePropertyID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	updated, err := h.svc.UpdateSettings(ctx, property.UpdateSettingsInput{
		PropertyID:   id,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		Currency:     req.Currency,
		Timezone:     req.Timezone,
		Language:     req.Language,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(settingsResponse{Settings: toSettingsMessage(updated)})
}

func (h *PropertyGrpcHandler) resolvePropertyID(ctx context.Context, raw string) (string, error) {
	if id := strings.TrimSpace(raw); id != "" {
		return id, nil
	}
	current, err := h.svc.CurrentProperty(ctx)
	if err != nil {
		return "", toStatusError(err)
	}
	return current.ID, nil
}
