package schema

import (
	"context"
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	gormschema "gorm.io/gorm/schema"
)

// NumericSerializer writes decimals to numeric columns with the scale they
// were parsed with, so 200.00 is stored as 200.00 rather than 200
type NumericSerializer struct{}

func init() {
	gormschema.RegisterSerializer("numeric", NumericSerializer{})
}

// NumericText renders d keeping its trailing fractional zeros
func NumericText(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Scan implements gormschema.SerializerInterface
func (NumericSerializer) Scan(ctx context.Context, field *gormschema.Field, dst reflect.Value, dbValue interface{}) error {
	fieldValue := reflect.New(field.FieldType)

	if dbValue != nil {
		var d decimal.Decimal
		if err := d.Scan(dbValue); err != nil {
			return fmt.Errorf("failed to scan %s: %w", field.DBName, err)
		}

		switch field.FieldType.Kind() {
		case reflect.Ptr:
			fieldValue.Elem().Set(reflect.ValueOf(&d))
		default:
			fieldValue.Elem().Set(reflect.ValueOf(d))
		}
	}

	field.ReflectValueOf(ctx, dst).Set(fieldValue.Elem())
	return nil
}

// Value implements gormschema.SerializerValuerInterface
func (NumericSerializer) Value(_ context.Context, field *gormschema.Field, _ reflect.Value, fieldValue interface{}) (interface{}, error) {
	switch v := fieldValue.(type) {
	case nil:
		return nil, nil
	case *decimal.Decimal:
		if v == nil {
			return nil, nil
		}
		return NumericText(*v), nil
	case decimal.Decimal:
		return NumericText(v), nil
	default:
		return nil, fmt.Errorf("unsupported numeric value %T for %s", fieldValue, field.DBName)
	}
}
