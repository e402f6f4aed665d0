package learningpb

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Сообщения передаются как google.protobuf.Struct, поэтому подходит стандартный proto-кодек gRPC.
// Числа внутри Struct - double: целые по модулю больше MaxSafeInt теряют точность,
// поэтому суммы ограничиваются на входе.

const MaxSafeInt int64 = 1<<53 - 1

func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

func Decode(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
